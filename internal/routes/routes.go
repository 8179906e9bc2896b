package routes

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/soundreach/backoffice/internal/auth"
	"github.com/soundreach/backoffice/internal/handlers"
	"github.com/soundreach/backoffice/internal/middleware"
	"github.com/soundreach/backoffice/internal/models"
	"github.com/soundreach/backoffice/internal/ratelimit"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
)

// Deps carries everything route registration needs.
type Deps struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Audit     *handlers.AuditHandler
	Donations *handlers.DonationHandler
	Contact   *handlers.ContactHandler
	Dashboard *handlers.DashboardHandler

	Sessions *auth.SessionManager
	Limiter  *ratelimit.Limiter
	Presets  ratelimit.Presets
	IPConfig *pkghttp.IPConfig
	Recorder middleware.AuditRecorder
	CSRFMode string
	Logger   *slog.Logger
}

// RegisterRoutes registers all application routes
func RegisterRoutes(router chi.Router, d Deps) {
	csrf := middleware.CSRFProtection(d.CSRFMode, d.Logger)
	contactLimit := middleware.RateLimit(d.Limiter, d.Presets.Contact, d.IPConfig)
	webhookLimit := middleware.RateLimit(d.Limiter, d.Presets.Webhook, d.IPConfig)
	writeLimit := middleware.RateLimit(d.Limiter, d.Presets.Write, d.IPConfig)
	readLimit := middleware.RateLimit(d.Limiter, d.Presets.Read, d.IPConfig)

	// Public routes. Login carries its own per-account limiter inside the
	// auth service; the IP limit here is a transport-level backstop.
	router.Get("/csrf-token", d.Auth.CSRFToken)
	router.With(middleware.RateLimitByIP(d.Presets.AuthIP.Max, d.Presets.AuthIP.Window), csrf).Post("/auth/login", d.Auth.Login)
	router.With(contactLimit, csrf).Post("/contact", d.Contact.Submit)
	router.With(webhookLimit).Post("/donations", d.Donations.RecordDonation)

	// Authenticated routes.
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(d.Sessions))

		r.With(csrf).Post("/auth/logout", d.Auth.Logout)

		// Staff and above.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleStaff))
			r.With(readLimit).Get("/auth/me", d.Auth.Me)
			r.With(readLimit).Get("/contact/submissions", d.Contact.List)
			r.With(writeLimit, csrf).Patch("/contact/submissions/{id}", d.Contact.UpdateStatus)
		})

		// Admin and above.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin))
			r.Use(middleware.AdminAudit(d.Recorder))

			r.With(readLimit).Get("/admin/dashboard", d.Dashboard.Summary)
			r.With(readLimit).Get("/admin/audit-logs", d.Audit.ListRecent)
			r.With(readLimit).Get("/admin/donations", d.Donations.ListRecent)
			r.With(readLimit).Get("/admin/donations/total", d.Donations.Total)

			r.With(readLimit).Get("/admin/users", d.Users.ListUsers)
			r.With(readLimit).Get("/admin/users/{id}", d.Users.GetUser)
			r.With(writeLimit, csrf).Post("/admin/users", d.Users.CreateUser)
			r.With(writeLimit, csrf).Put("/admin/users/{id}", d.Users.UpdateUser)
			r.With(writeLimit, csrf).Delete("/admin/users/{id}", d.Users.DeleteUser)
			r.With(writeLimit, csrf).Patch("/admin/users/{id}/restore", d.Users.RestoreUser)
		})
	})
}

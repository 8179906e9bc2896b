package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/soundreach/backoffice/internal/auth"
	"github.com/soundreach/backoffice/internal/background"
	"github.com/soundreach/backoffice/internal/config"
	"github.com/soundreach/backoffice/internal/database"
	"github.com/soundreach/backoffice/internal/handlers"
	middlewareCustom "github.com/soundreach/backoffice/internal/middleware"
	"github.com/soundreach/backoffice/internal/models"
	"github.com/soundreach/backoffice/internal/ratelimit"
	"github.com/soundreach/backoffice/internal/repositories"
	"github.com/soundreach/backoffice/internal/routes"
	"github.com/soundreach/backoffice/internal/services"
	pkgauth "github.com/soundreach/backoffice/pkg/auth"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
	pkglogger "github.com/soundreach/backoffice/pkg/logger"
	"github.com/soundreach/backoffice/pkg/sanitize"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		migrateCancel()
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	migrateCancel()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	// Rate limiting: one in-memory store shared by every preset, swept
	// periodically in the background.
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore())
	presets := ratelimit.Presets{
		Auth:    ratelimit.Limit{Max: cfg.RateLimit.AuthMax, Window: cfg.RateLimit.AuthWindow},
		AuthIP:  ratelimit.Limit{Max: cfg.RateLimit.AuthIPMax, Window: cfg.RateLimit.AuthWindow},
		Contact: ratelimit.Limit{Max: cfg.RateLimit.ContactMax, Window: cfg.RateLimit.ContactWindow},
		Write:   ratelimit.Limit{Max: cfg.RateLimit.APIWriteMax, Window: cfg.RateLimit.PerMinute},
		Read:    ratelimit.Limit{Max: cfg.RateLimit.APIReadMax, Window: cfg.RateLimit.PerMinute},
		Webhook: ratelimit.Limit{Max: cfg.RateLimit.WebhookMax, Window: cfg.RateLimit.PerMinute},
	}
	sweepManager := background.NewSweepManager(limiter, logger, cfg.RateLimit.SweepInterval)

	// Sessions and cookies
	sessionManager := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionMaxAge)
	cookieConfig := auth.CookieConfig{Secure: cfg.Server.Env == "production"}

	// Security logging
	securityLogger := pkglogger.NewSecurityLogger(logger)

	// AWS SES email service for contact-form notifications
	emailService, err := services.NewAWSSESEmailService(
		cfg.Email.AWSRegion,
		cfg.Email.FromAddress,
		cfg.Email.AdminAddress,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize email service", slog.Any("error", err))
		os.Exit(1)
	}

	// Services
	auditService := services.NewAuditService(auditRepo, logger)
	authService := services.NewAuthService(userRepo, limiter, presets.Auth, auditService, securityLogger, logger)
	userService := services.NewUserService(userRepo, auditService, logger)
	donationService := services.NewDonationService(donationRepo, userRepo, auditService, logger)
	contactService := services.NewContactService(contactRepo, emailService, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, sessionManager, cookieConfig, logger)
	userHandler := handlers.NewUserHandler(userService)
	auditHandler := handlers.NewAuditHandler(auditService)
	donationHandler := handlers.NewDonationHandler(donationService)
	contactHandler := handlers.NewContactHandler(contactService)
	dashboardHandler := handlers.NewDashboardHandler(donationService, auditService)

	// Bootstrap first admin user if configured
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(bootCtx, userRepo, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	bootCancel()

	// CORS
	corsConfig := middlewareCustom.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}

	// Router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, routes.Deps{
		Auth:      authHandler,
		Users:     userHandler,
		Audit:     auditHandler,
		Donations: donationHandler,
		Contact:   contactHandler,
		Dashboard: dashboardHandler,
		Sessions:  sessionManager,
		Limiter:   limiter,
		Presets:   presets,
		IPConfig:  ipConfig,
		Recorder:  auditService,
		CSRFMode:  cfg.Auth.CSRFMode,
		Logger:    logger,
	})

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	go sweepManager.Start(sweepCtx)

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	sweepCancel()
	sweepManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// adminUserRepo is the slice of the user repository the bootstrap needs.
type adminUserRepo interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// ensureAdminUser creates the first superadmin if ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no account with that email exists yet.
func ensureAdminUser(ctx context.Context, userRepo adminUserRepo, logger *slog.Logger) error {
	adminEmail := sanitize.Email(os.Getenv("ADMIN_EMAIL"))
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	_, err := userRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	if err := pkgauth.ValidatePassword(adminPassword); err != nil {
		return fmt.Errorf("admin password rejected: %w", err)
	}

	hashedPassword, err := pkgauth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Name:         "Admin",
		Role:         models.RoleSuperAdmin,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created successfully")
	return nil
}

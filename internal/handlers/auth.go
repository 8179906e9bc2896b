package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/soundreach/backoffice/internal/auth"
	"github.com/soundreach/backoffice/internal/models"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
	"github.com/soundreach/backoffice/pkg/sanitize"
)

type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context, userID string)
}

type AuthHandler struct {
	service  AuthService
	sessions *auth.SessionManager
	cookies  auth.CookieConfig
	logger   *slog.Logger
}

func NewAuthHandler(service AuthService, sessions *auth.SessionManager, cookies auth.CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		cookies:  cookies,
		logger:   logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type LoginResponse struct {
	User *UserResponse `json:"user"`
}

// Login verifies credentials and issues a session cookie. All credential
// failures surface the same 401; rate-limit denials return 429 with a
// Retry-After header.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	email := sanitize.Email(req.Email)

	user, err := h.service.Authenticate(r.Context(), email, req.Password)
	if err != nil {
		if rle, ok := models.IsRateLimit(err); ok {
			pkghttp.WriteTooManyRequests(w, "Too many login attempts. Please try again later.", int(rle.RetryAfter.Seconds()))
			return
		}
		h.logger.Error("login failed", "error", err)
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}
	if user == nil {
		pkghttp.WriteUnauthorized(w, "Invalid email or password")
		return
	}

	token, err := h.sessions.Issue(user.ID, user.Role)
	if err != nil {
		h.logger.Error("session issue failed", "error", err)
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	auth.SetSessionCookie(w, token, h.sessions.MaxAge(), h.cookies)
	pkghttp.WriteJSON(w, http.StatusOK, LoginResponse{User: userModelToResponse(user)})
}

// Logout clears the session cookie. Always succeeds, even without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := auth.SessionFromContext(r); claims != nil {
		h.service.Logout(r.Context(), claims.UserID)
	}

	auth.ClearSessionCookie(w, h.cookies)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the authenticated user's claims, for session introspection.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.SessionFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Unauthorized - Please sign in")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"userId": claims.UserID,
		"role":   string(claims.Role),
	})
}

// CSRFToken mints a fresh token, sets it as a cookie, and echoes it in the
// body so clients can double-submit it.
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := auth.GenerateCSRFToken()
	if err != nil {
		h.logger.Error("csrf token generation failed", "error", err)
		pkghttp.WriteInternalError(w, "Something went wrong")
		return
	}

	auth.SetCSRFCookie(w, token, h.cookies)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundreach/backoffice/internal/auth"
	"github.com/soundreach/backoffice/internal/models"
)

// MockAuthService implements AuthService for handler tests
type MockAuthService struct {
	AuthenticateFunc func(ctx context.Context, email, password string) (*models.User, error)
	LogoutFunc       func(ctx context.Context, userID string)
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) {
	if m.LogoutFunc != nil {
		m.LogoutFunc(ctx, userID)
	}
}

func newAuthHandler(svc AuthService) *AuthHandler {
	sessions := auth.NewSessionManager("test-session-secret-at-least-32ch", time.Hour)
	return NewAuthHandler(svc, sessions, auth.CookieConfig{}, slog.Default())
}

func loginRequest(t *testing.T, email, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := &models.User{ID: userID, Email: "staff@example.org", Name: "Staff", Role: models.RoleStaff}
	svc := &MockAuthService{
		AuthenticateFunc: func(ctx context.Context, email, password string) (*models.User, error) {
			return user, nil
		},
	}
	h := newAuthHandler(svc)

	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "staff@example.org", "ValidPass1!"))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, userID, resp.User.ID)

	cookies := w.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &MockAuthService{
		AuthenticateFunc: func(ctx context.Context, email, password string) (*models.User, error) {
			return nil, nil
		},
	}
	h := newAuthHandler(svc)

	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "staff@example.org", "wrong"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_Login_RateLimited(t *testing.T) {
	svc := &MockAuthService{
		AuthenticateFunc: func(ctx context.Context, email, password string) (*models.User, error) {
			return nil, &models.RateLimitError{RetryAfter: 10 * time.Minute}
		},
	}
	h := newAuthHandler(svc)

	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "staff@example.org", "guess"))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "600", w.Header().Get("Retry-After"))
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := newAuthHandler(&MockAuthService{})

	w := httptest.NewRecorder()
	h.Login(w, loginRequest(t, "", ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	h := newAuthHandler(&MockAuthService{})

	r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.Login(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	var loggedOut string
	svc := &MockAuthService{
		LogoutFunc: func(ctx context.Context, userID string) {
			loggedOut = userID
		},
	}
	h := newAuthHandler(svc)

	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r = r.WithContext(auth.WithSession(r.Context(), &models.SessionClaims{UserID: userID, Role: models.RoleStaff}))
	w := httptest.NewRecorder()
	h.Logout(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, loggedOut)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthHandler_Logout_WithoutSessionStillSucceeds(t *testing.T) {
	h := newAuthHandler(&MockAuthService{})

	w := httptest.NewRecorder()
	h.Logout(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := newAuthHandler(&MockAuthService{})

	w := httptest.NewRecorder()
	h.Me(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_CSRFToken_SetsCookieAndEchoesToken(t *testing.T) {
	h := newAuthHandler(&MockAuthService{})

	w := httptest.NewRecorder()
	h.CSRFToken(w, httptest.NewRequest(http.MethodGet, "/csrf-token", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["csrfToken"]
	assert.NotEmpty(t, token)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CSRFCookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
}

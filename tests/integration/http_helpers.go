package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/soundreach/backoffice/internal/auth"
	"github.com/soundreach/backoffice/internal/config"
	"github.com/soundreach/backoffice/internal/database"
	"github.com/soundreach/backoffice/internal/handlers"
	middlewareCustom "github.com/soundreach/backoffice/internal/middleware"
	"github.com/soundreach/backoffice/internal/models"
	"github.com/soundreach/backoffice/internal/ratelimit"
	"github.com/soundreach/backoffice/internal/repositories"
	"github.com/soundreach/backoffice/internal/routes"
	"github.com/soundreach/backoffice/internal/services"
	pkghttp "github.com/soundreach/backoffice/pkg/http"
	pkglogger "github.com/soundreach/backoffice/pkg/logger"
)

// SentEmail represents a captured email message
type SentEmail struct {
	To      string
	Subject string
}

// MockEmailService captures sent notifications for test assertions
type MockEmailService struct {
	SentEmails []SentEmail
	mu         sync.Mutex
}

func (m *MockEmailService) SendContactNotification(ctx context.Context, submission *models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEmails = append(m.SentEmails, SentEmail{To: "admin", Subject: submission.Subject})
	return nil
}

func (m *MockEmailService) SendContactAutoReply(ctx context.Context, submission *models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEmails = append(m.SentEmails, SentEmail{To: submission.Email, Subject: "auto-reply"})
	return nil
}

// Count returns the number of captured emails
func (m *MockEmailService) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentEmails)
}

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server       *httptest.Server
	DB           *database.DB
	EmailService *MockEmailService
	Config       *config.Config
	Sessions     *auth.SessionManager

	logger *slog.Logger
}

// NewTestServer initializes a complete HTTP server with real database + mocked email
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			SessionSecret: "test-session-secret-32-chars-ok!",
			SessionMaxAge: 30 * 24 * time.Hour,
			CSRFMode:      config.CSRFModeDoubleSubmit,
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
			TrustedProxies: []string{},
		},
	}

	userRepo := repositories.NewUserRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	mockEmail := &MockEmailService{}

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore())
	presets := ratelimit.DefaultPresets()

	sessions := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionMaxAge)
	seclog := pkglogger.NewSecurityLogger(logger)

	auditService := services.NewAuditService(auditRepo, logger)
	authService := services.NewAuthService(userRepo, limiter, presets.Auth, auditService, seclog, logger)
	userService := services.NewUserService(userRepo, auditService, logger)
	donationService := services.NewDonationService(donationRepo, userRepo, auditService, logger)
	contactService := services.NewContactService(contactRepo, mockEmail, logger)

	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	cookieConfig := auth.CookieConfig{Secure: false}

	deps := routes.Deps{
		Auth:      handlers.NewAuthHandler(authService, sessions, cookieConfig, logger),
		Users:     handlers.NewUserHandler(userService),
		Audit:     handlers.NewAuditHandler(auditService),
		Donations: handlers.NewDonationHandler(donationService),
		Contact:   handlers.NewContactHandler(contactService),
		Dashboard: handlers.NewDashboardHandler(donationService, auditService),
		Sessions:  sessions,
		Limiter:   limiter,
		Presets:   presets,
		IPConfig:  ipConfig,
		Recorder:  auditService,
		CSRFMode:  cfg.Auth.CSRFMode,
		Logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, deps)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:       server,
		DB:           db,
		EmailService: mockEmail,
		Config:       cfg,
		Sessions:     sessions,
		logger:       logger,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// Client is an HTTP client with a cookie jar, so session and CSRF
// cookies round-trip the way a browser would.
type Client struct {
	http      *http.Client
	baseURL   string
	csrfToken string
}

// NewClient creates a cookie-aware client bound to the test server
func (ts *TestServer) NewClient() (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:    &http.Client{Jar: jar},
		baseURL: ts.Server.URL,
	}, nil
}

// FetchCSRFToken obtains a CSRF token and cookie from the server
func (c *Client) FetchCSRFToken() error {
	resp, err := c.http.Get(c.baseURL + "/csrf-token")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		CSRFToken string `json:"csrfToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	c.csrfToken = body.CSRFToken
	return nil
}

// Request makes an HTTP request, attaching the CSRF token when held
func (c *Client) Request(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.csrfToken != "" {
		req.Header.Set("X-CSRF-Token", c.csrfToken)
	}

	return c.http.Do(req)
}

// Login authenticates the client, storing the session cookie in the jar
func (c *Client) Login(email, password string) (*http.Response, error) {
	if c.csrfToken == "" {
		if err := c.FetchCSRFToken(); err != nil {
			return nil, err
		}
	}
	return c.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// GetErrorMessage extracts the error message from an error response
func GetErrorMessage(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return "", err
	}
	if msg, ok := errResp["message"].(string); ok {
		return msg, nil
	}
	return "", nil
}

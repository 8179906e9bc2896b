package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Set required env vars
	os.Setenv("SESSION_SECRET", "test-secret-32-characters-long!!")
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port: got %v, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.SessionMaxAge != 30*24*time.Hour {
		t.Errorf("SessionMaxAge: got %v, want 720h", cfg.Auth.SessionMaxAge)
	}
	if cfg.Auth.CSRFMode != CSRFModeDoubleSubmit {
		t.Errorf("CSRFMode: got %v, want %v", cfg.Auth.CSRFMode, CSRFModeDoubleSubmit)
	}
	if cfg.RateLimit.AuthMax != 5 {
		t.Errorf("AuthMax: got %v, want 5", cfg.RateLimit.AuthMax)
	}
	if cfg.RateLimit.AuthIPMax != 20 {
		t.Errorf("AuthIPMax: got %v, want 20", cfg.RateLimit.AuthIPMax)
	}
	if cfg.RateLimit.AuthWindow != 15*time.Minute {
		t.Errorf("AuthWindow: got %v, want 15m", cfg.RateLimit.AuthWindow)
	}
	if cfg.RateLimit.SweepInterval != 5*time.Minute {
		t.Errorf("SweepInterval: got %v, want 5m", cfg.RateLimit.SweepInterval)
	}
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	os.Setenv("DB_PASSWORD", "test")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil, want error for missing SESSION_SECRET")
	}
}

func TestLoad_MissingDBPassword(t *testing.T) {
	os.Setenv("SESSION_SECRET", "test-secret-32-characters-long!!")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil, want error for missing DB_PASSWORD")
	}
}

func TestLoad_InvalidCSRFMode(t *testing.T) {
	os.Setenv("SESSION_SECRET", "test-secret-32-characters-long!!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("CSRF_MODE", "sometimes")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() = nil, want error for invalid CSRF_MODE")
	}
}

func TestLoad_DisabledCSRFMode(t *testing.T) {
	os.Setenv("SESSION_SECRET", "test-secret-32-characters-long!!")
	os.Setenv("DB_PASSWORD", "test")
	os.Setenv("CSRF_MODE", "disabled")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if cfg.Auth.CSRFMode != CSRFModeDisabled {
		t.Errorf("CSRFMode: got %v, want %v", cfg.Auth.CSRFMode, CSRFModeDisabled)
	}
}

func TestValidateSessionSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		env     string
		wantErr bool
	}{
		{"development 16 chars", "sixteen-chars-ok", "development", false},
		{"development too short", "short", "development", true},
		{"production 32 chars", "this-secret-is-32-characters-ok!", "production", false},
		{"production only 16 chars", "sixteen-chars-ok", "production", true},
		{"weak value", "changeme", "development", true},
		{"long non-weak value", "CHANGEME12345678", "development", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSessionSecret(tt.secret, tt.env)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSessionSecret(%q, %q) = %v, wantErr %v", tt.secret, tt.env, err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "backoffice",
		Password: "hunter2",
		Name:     "backoffice",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=backoffice password=hunter2 dbname=backoffice sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestParseAllowedOrigins_Production(t *testing.T) {
	os.Setenv("ALLOWED_ORIGINS", "https://soundreach.org, https://www.soundreach.org")
	defer os.Clearenv()

	origins := parseAllowedOrigins("production")
	if len(origins) != 2 {
		t.Fatalf("parseAllowedOrigins: got %d origins, want 2", len(origins))
	}
	if origins[1] != "https://www.soundreach.org" {
		t.Errorf("origins[1] = %q, want trimmed value", origins[1])
	}
}

func TestParseAllowedOrigins_DevelopmentDefaults(t *testing.T) {
	origins := parseAllowedOrigins("development")
	if len(origins) == 0 {
		t.Fatal("parseAllowedOrigins: development should allow localhost origins")
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// CSRF modes. The guard is either active double-submit verification or
// an explicit no-op decided at startup, never implicit dead code.
const (
	CSRFModeDoubleSubmit = "double-submit"
	CSRFModeDisabled     = "disabled"
)

type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	TrustedProxies []string
}

type AuthConfig struct {
	SessionSecret string
	SessionMaxAge time.Duration
	CSRFMode      string
}

type RateLimitConfig struct {
	AuthMax        int
	AuthIPMax      int
	AuthWindow     time.Duration
	ContactMax     int
	ContactWindow  time.Duration
	APIWriteMax    int
	APIReadMax     int
	WebhookMax     int
	PerMinute      time.Duration
	SweepInterval  time.Duration
}

type EmailConfig struct {
	AWSRegion    string
	FromAddress  string
	AdminAddress string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionSecret := getEnv("SESSION_SECRET", "")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	env := getEnv("ENV", "development")

	cfg := &Config{
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvAsInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Name:              getEnv("DB_NAME", "backoffice"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:          int32(getEnvAsInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime:   getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: parseAllowedOrigins(env),
			TrustedProxies: parseList(getEnv("TRUSTED_PROXIES", "")),
		},
		Auth: AuthConfig{
			SessionSecret: sessionSecret,
			SessionMaxAge: getEnvAsDuration("SESSION_MAX_AGE", 30*24*time.Hour),
			CSRFMode:      getEnv("CSRF_MODE", CSRFModeDoubleSubmit),
		},
		RateLimit: RateLimitConfig{
			AuthMax:       getEnvAsInt("RATE_LIMIT_AUTH_MAX", 5),
			AuthIPMax:     getEnvAsInt("RATE_LIMIT_AUTH_IP_MAX", 20),
			AuthWindow:    getEnvAsDuration("RATE_LIMIT_AUTH_WINDOW", 15*time.Minute),
			ContactMax:    getEnvAsInt("RATE_LIMIT_CONTACT_MAX", 3),
			ContactWindow: getEnvAsDuration("RATE_LIMIT_CONTACT_WINDOW", 15*time.Minute),
			APIWriteMax:   getEnvAsInt("RATE_LIMIT_API_WRITE_MAX", 20),
			APIReadMax:    getEnvAsInt("RATE_LIMIT_API_READ_MAX", 100),
			WebhookMax:    getEnvAsInt("RATE_LIMIT_WEBHOOK_MAX", 1000),
			PerMinute:     1 * time.Minute,
			SweepInterval: getEnvAsDuration("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute),
		},
		Email: EmailConfig{
			AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
			FromAddress:  getEnv("EMAIL_FROM", "noreply@soundreach.org"),
			AdminAddress: getEnv("EMAIL_ADMIN", "info@soundreach.org"),
		},
	}

	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	if err := validateSessionSecret(sessionSecret, env); err != nil {
		return nil, err
	}

	if cfg.Auth.CSRFMode != CSRFModeDoubleSubmit && cfg.Auth.CSRFMode != CSRFModeDisabled {
		return nil, fmt.Errorf("CSRF_MODE must be %q or %q", CSRFModeDoubleSubmit, CSRFModeDisabled)
	}

	return cfg, nil
}

// validateSessionSecret enforces minimum signing-secret strength.
func validateSessionSecret(secret, env string) error {
	minLength := 16
	if env == "production" {
		minLength = 32
	}

	if len(secret) < minLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters in %s environment (got %d)",
			minLength, env, len(secret))
	}

	weakSecrets := []string{
		"secret", "test", "password", "12345", "changeme",
		"admin", "root", "default", "example",
	}

	secretLower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if secretLower == weak {
			return fmt.Errorf("SESSION_SECRET cannot be a common weak value")
		}
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		origins := parseList(getEnv("ALLOWED_ORIGINS", ""))
		if origins == nil {
			return []string{}
		}
		return origins
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}

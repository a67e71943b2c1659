package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	// EnvProduction is the APP_ENV value used for deployed instances.
	EnvProduction = "production"
	// Wildcard grants any origin, method or header in a CORS list.
	Wildcard = "*"
)

// Config holds process configuration read from the environment.
type Config struct {
	Port            string
	Environment     string
	LogLevel        zapcore.Level
	ProjectID       string // Google Cloud project used for trace correlation (optional)
	ShutdownTimeout time.Duration
	CORS            CORS
}

// CORS describes the cross-origin policy applied to every response.
type CORS struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// AllowsAnyOrigin reports whether the policy grants every origin.
func (c CORS) AllowsAnyOrigin() bool {
	return contains(c.AllowedOrigins, Wildcard)
}

// Permissive reports whether origins, methods and headers are all wildcards.
func (c CORS) Permissive() bool {
	return c.AllowsAnyOrigin() &&
		contains(c.AllowedMethods, Wildcard) &&
		contains(c.AllowedHeaders, Wildcard)
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// Default returns the configuration used when no variables are set.
// The CORS policy is fully permissive so any frontend origin can call the API.
func Default() Config {
	return Config{
		Port:            "8080",
		Environment:     "development",
		LogLevel:        zapcore.InfoLevel,
		ShutdownTimeout: 10 * time.Second,
		CORS: CORS{
			AllowedOrigins: []string{Wildcard},
			AllowedMethods: []string{Wildcard},
			AllowedHeaders: []string{Wildcard},
			MaxAge:         300,
		},
	}
}

// Load reads an optional .env file from the working directory and then
// builds the configuration from the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration using getenv as the variable source.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = v
	}
	if v := strings.TrimSpace(getenv("APP_ENV")); v != "" {
		cfg.Environment = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = level
	}
	cfg.ProjectID = firstNonEmpty(
		getenv("GOOGLE_CLOUD_PROJECT"),
		getenv("GCP_PROJECT"),
		getenv("GCLOUD_PROJECT"),
		getenv("PROJECT_ID"),
	)
	if v := strings.TrimSpace(getenv("SHUTDOWN_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", v)
		}
		cfg.ShutdownTimeout = d
	}

	if list := splitList(getenv("CORS_ALLOWED_ORIGINS")); len(list) > 0 {
		cfg.CORS.AllowedOrigins = list
	}
	if list := splitList(getenv("CORS_ALLOWED_METHODS")); len(list) > 0 {
		for i, m := range list {
			list[i] = strings.ToUpper(m)
		}
		cfg.CORS.AllowedMethods = list
	}
	if list := splitList(getenv("CORS_ALLOWED_HEADERS")); len(list) > 0 {
		cfg.CORS.AllowedHeaders = list
	}
	if v := strings.TrimSpace(getenv("CORS_MAX_AGE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid CORS_MAX_AGE %q", v)
		}
		cfg.CORS.MaxAge = n
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

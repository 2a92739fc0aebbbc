package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	DB struct {
		DSN string
	}
	API struct {
		Port     string
		BasePath string
	}
	Alerts struct {
		// Timeout bounds one full alert computation (all four source
		// queries included).
		Timeout time.Duration
		// CacheTTL is how long a computed alert snapshot is served
		// before being recomputed.
		CacheTTL time.Duration
	}
	Logging struct {
		Dir   string
		Level string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	cfg.DB.DSN = os.Getenv("DB_DSN")
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	if s, err := strconv.Atoi(os.Getenv("ALERT_TIMEOUT_SECONDS")); err == nil && s > 0 {
		cfg.Alerts.Timeout = time.Duration(s) * time.Second
	}
	if s, err := strconv.Atoi(os.Getenv("ALERT_CACHE_TTL_SECONDS")); err == nil && s >= 0 {
		cfg.Alerts.CacheTTL = time.Duration(s) * time.Second
	}

	// Validate required settings
	missing := []string{}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Alerts.Timeout == 0 {
		cfg.Alerts.Timeout = 15 * time.Second
	}
	if cfg.Alerts.CacheTTL == 0 {
		cfg.Alerts.CacheTTL = 2 * time.Minute
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

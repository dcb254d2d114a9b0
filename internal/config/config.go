package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultBaseURL      = "https://masdeportebackend.up.railway.app"
	defaultHTTPTimeout  = "10s"
	defaultCallbackAddr = "127.0.0.1:4242"
	defaultLogLevel     = "info"
	defaultSessionFile  = "session.db"
)

// Config holds the client runtime settings, loaded from the environment.
type Config struct {
	AppEnv        string
	BaseURL       string
	HTTPTimeout   time.Duration
	SessionDBPath string
	CallbackAddr  string
	LogLevel      string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(getEnv("API_BASE_URL", defaultBaseURL)), "/")
	cfg.CallbackAddr = strings.TrimSpace(getEnv("CALLBACK_ADDR", defaultCallbackAddr))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))

	var err error
	cfg.HTTPTimeout, err = parseDurationEnv("HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	cfg.SessionDBPath = strings.TrimSpace(os.Getenv("SESSION_DB_PATH"))
	if cfg.SessionDBPath == "" {
		cfg.SessionDBPath, err = defaultSessionPath()
		if err != nil {
			return nil, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("API_BASE_URL must be a valid http(s) URL, got %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0")
	}
	if cfg.CallbackAddr == "" {
		return fmt.Errorf("CALLBACK_ADDR must not be empty")
	}
	if cfg.SessionDBPath == "" {
		return fmt.Errorf("SESSION_DB_PATH must not be empty")
	}
	return nil
}

func defaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config dir for session store: %w", err)
	}
	appDir := filepath.Join(dir, "masdeporte")
	if err := os.MkdirAll(appDir, 0o700); err != nil {
		return "", fmt.Errorf("cannot create session store dir: %w", err)
	}
	return filepath.Join(appDir, defaultSessionFile), nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

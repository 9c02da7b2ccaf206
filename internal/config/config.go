package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	BackendAPIAddress string
	JWTSecret         string
	OperatorLogin     string
	OperatorPassword  string
	TokenTTL          time.Duration
	RefreshInterval   time.Duration
	FetchTimeout      time.Duration
	ShutdownTimeout   time.Duration
	BulkWorkers       int
	Timezone          string
	Locale            string
	LogLevel          string

	// Location and Language are resolved from Timezone and Locale.
	Location *time.Location
	Language language.Tag
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 12 * time.Hour
	defaultFetchTimeout    = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultBulkWorkers     = 4
	defaultTimezone        = "UTC"
	defaultLocale          = "ru"
	defaultLogLevel        = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		BackendAPIAddress: getString(lookup, "BACKEND_API_ADDRESS", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		OperatorLogin:     getString(lookup, "OPERATOR_LOGIN", ""),
		OperatorPassword:  getString(lookup, "OPERATOR_PASSWORD", ""),
		TokenTTL:          getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		RefreshInterval:   getDuration(lookup, "REFRESH_INTERVAL", 0),
		FetchTimeout:      getDuration(lookup, "FETCH_TIMEOUT", defaultFetchTimeout),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		BulkWorkers:       getInt(lookup, "BULK_WORKERS", defaultBulkWorkers),
		Timezone:          getString(lookup, "TIMEZONE", defaultTimezone),
		Locale:            getString(lookup, "LOCALE", defaultLocale),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		refreshIntervalStr = cfg.RefreshInterval.String()
		fetchTimeoutStr    = cfg.FetchTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.BackendAPIAddress, "b", cfg.BackendAPIAddress, "Backend API base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.OperatorLogin, "operator-login", cfg.OperatorLogin, "Operator created at startup")
	fs.StringVar(&cfg.OperatorPassword, "operator-password", cfg.OperatorPassword, "Password of the startup operator")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of operator sessions")
	fs.StringVar(&refreshIntervalStr, "refresh-interval", refreshIntervalStr, "Interval between automatic refreshes, 0 disables")
	fs.StringVar(&fetchTimeoutStr, "fetch-timeout", fetchTimeoutStr, "Backend fetch timeout")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.BulkWorkers, "bulk-workers", cfg.BulkWorkers, "Concurrent backend calls per bulk update")
	fs.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "Timezone for calendar periods")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for labels and collation")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.RefreshInterval, err = time.ParseDuration(refreshIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}

	if cfg.FetchTimeout, err = time.ParseDuration(fetchTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid fetch timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.BulkWorkers <= 0 {
		cfg.BulkWorkers = defaultBulkWorkers
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.RefreshInterval < 0 {
		cfg.RefreshInterval = 0
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.BackendAPIAddress == "" {
		return nil, fmt.Errorf("backend API address must be provided")
	}

	if u, err := url.Parse(cfg.BackendAPIAddress); err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("backend API address must be an absolute URL")
	}

	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	if cfg.Language, err = language.Parse(cfg.Locale); err != nil {
		return nil, fmt.Errorf("invalid locale: %w", err)
	}

	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseLevel maps a level name onto slog levels.
func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module loads the configuration and logs its non-secret part once the logger exists.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(logSummary),
)

func logSummary(cfg *Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("run_address", cfg.RunAddress),
		slog.String("backend", cfg.BackendAPIAddress),
		slog.Bool("database", cfg.DatabaseURI != ""),
		slog.Bool("default_secret", cfg.JWTSecret == defaultJWTSecret),
		slog.Duration("refresh_interval", cfg.RefreshInterval),
		slog.Duration("token_ttl", cfg.TokenTTL),
		slog.Int("bulk_workers", cfg.BulkWorkers),
		slog.String("timezone", cfg.Timezone),
		slog.String("locale", cfg.Locale),
	)
}

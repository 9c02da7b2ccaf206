package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/paymentqa-dashboard/internal/config"
)

// New creates a JSON slog.Logger writing to stdout at the configured level.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		if parsed, err := config.ParseLevel(cfg.LogLevel); err == nil {
			level = parsed
		}
	}
	return newJSON(os.Stdout, level)
}

func newJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

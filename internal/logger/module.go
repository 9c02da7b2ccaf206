package logger

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the application logger and installs it as the slog default,
// so packages logging through slog's top-level functions share its level and format.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(slog.SetDefault),
)

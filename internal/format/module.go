package format

import (
	"go.uber.org/fx"

	"github.com/polkiloo/paymentqa-dashboard/internal/config"
)

// Module provides the Formatter for the configured locale.
var Module = fx.Provide(func(cfg *config.Config) *Formatter { return New(cfg.Language) })

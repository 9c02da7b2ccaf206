package dashboard

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/paymentqa-dashboard/internal/adapter/backend"
	"github.com/polkiloo/paymentqa-dashboard/internal/config"
)

// Module provides the shared Loader.
var Module = fx.Provide(newLoader)

type loaderParams struct {
	fx.In

	Client backend.Client
	Config *config.Config
	Logger *slog.Logger
}

func newLoader(p loaderParams) *Loader {
	return NewLoader(p.Client, p.Config.FetchTimeout, p.Logger)
}

package backend

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/paymentqa-dashboard/internal/config"
)

// Module exposes the backend API client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.BackendAPIAddress, p.Config.Location, p.Logger)
}

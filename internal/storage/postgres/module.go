package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/paymentqa-dashboard/internal/config"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/repository"
)

// Module wires PostgreSQL storage and the operator and preferences repositories.
var Module = fx.Options(
	fx.Provide(
		newStorage,
		func(s *Storage) repository.Factory { return s },
		func(f repository.Factory) repository.OperatorRepository { return f.Operators() },
		func(f repository.Factory) repository.PreferencesRepository { return f.Preferences() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Config.Location, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := storage.HealthCheck(ctx); err != nil {
				return err
			}
			storage.logger.Info("storage ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}

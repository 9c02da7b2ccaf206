package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/paymentqa-dashboard/internal/adapter/backend"
	"github.com/polkiloo/paymentqa-dashboard/internal/app"
	"github.com/polkiloo/paymentqa-dashboard/internal/config"
	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
	"github.com/polkiloo/paymentqa-dashboard/internal/logger"
	"github.com/polkiloo/paymentqa-dashboard/internal/pkg/auth"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/handlers"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/router"
	"github.com/polkiloo/paymentqa-dashboard/internal/storage/postgres"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		format.Module,
		auth.Module,
		postgres.Module,
		backend.Module,
		dashboard.Module,
		usecase.Module,
		fx.Provide(
			func(l *dashboard.Loader) usecase.SnapshotSource { return l },
			func(l *dashboard.Loader) usecase.SnapshotStore { return l },
			func(c backend.Client) usecase.StatusUpdater { return c },
			func(f *app.AdminFacade) handlers.AdminFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/paymentqa-dashboard/internal/config"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewPreferencesUseCase,
	newDashboardUseCase,
	newBulkUseCase,
)

type dashboardParams struct {
	fx.In

	Source    SnapshotSource
	Formatter *format.Formatter
	Config    *config.Config
}

func newDashboardUseCase(p dashboardParams) *DashboardUseCase {
	return NewDashboardUseCase(p.Source, p.Formatter, p.Config.Location)
}

type bulkParams struct {
	fx.In

	Updater StatusUpdater
	Store   SnapshotStore
	Config  *config.Config
	Logger  *slog.Logger
}

func newBulkUseCase(p bulkParams) *BulkUseCase {
	return NewBulkUseCase(p.Updater, p.Store, p.Config.BulkWorkers, p.Logger)
}

package handlers

import (
	"context"
	"time"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// DashboardFacade exposes read access to the dashboard data.
type DashboardFacade interface {
	Orders(q usecase.OrderQuery) (*usecase.OrderList, error)
	OrderDetail(id int64) (*analytics.OrderDetail, error)
	Metrics(window model.DateWindow) (analytics.Metrics, error)
	RevenueChart(window model.DateWindow) ([]analytics.RevenuePoint, error)
	StatusChart() ([]analytics.Slice, error)
	GeoChart() ([]analytics.Slice, error)
	PackageChart() ([]analytics.Slice, error)
	Activity(q analytics.ActivityQuery) ([]model.ActivityEvent, error)
	Testers() ([]model.Tester, error)
	Countries() (map[string]model.Country, error)
	SyncStatus() dashboard.Status
	Refresh(ctx context.Context) (dashboard.Status, error)
	WaitForUpdate(ctx context.Context, since uint64, timeout time.Duration) (dashboard.Status, bool, error)
	Formatter() *format.Formatter
	Location() *time.Location
	Now() time.Time
}

// BulkFacade edits many orders at once.
type BulkFacade interface {
	UpdateStatuses(ctx context.Context, ids []int64, status model.OrderStatus) (*usecase.BulkResult, error)
	AssignTester(ctx context.Context, ids []int64, testerID *int64) (*usecase.BulkResult, error)
	DeleteOrders(ctx context.Context, ids []int64) (*usecase.BulkResult, error)
}

// PreferencesFacade stores operator view settings.
type PreferencesFacade interface {
	Preferences(ctx context.Context, operatorID int64) (model.Preferences, error)
	SavePreferences(ctx context.Context, prefs model.Preferences) (model.Preferences, error)
	ResetPreferences(ctx context.Context, operatorID int64) error
}

// AdminFacade aggregates the full set of operations used across handlers.
type AdminFacade interface {
	AuthFacade
	DashboardFacade
	BulkFacade
	PreferencesFacade
}

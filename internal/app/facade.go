package app

import (
	"context"
	"time"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
)

// AdminFacade exposes the dashboard use cases to the HTTP layer.
type AdminFacade struct {
	auth      *usecase.AuthUseCase
	dashboard *usecase.DashboardUseCase
	bulk      *usecase.BulkUseCase
	prefs     *usecase.PreferencesUseCase
}

func NewAdminFacade(auth *usecase.AuthUseCase, dashboard *usecase.DashboardUseCase, bulk *usecase.BulkUseCase, prefs *usecase.PreferencesUseCase) *AdminFacade {
	return &AdminFacade{auth: auth, dashboard: dashboard, bulk: bulk, prefs: prefs}
}

func (f *AdminFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *AdminFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *AdminFacade) Orders(q usecase.OrderQuery) (*usecase.OrderList, error) {
	return f.dashboard.Orders(q)
}

func (f *AdminFacade) OrderDetail(id int64) (*analytics.OrderDetail, error) {
	return f.dashboard.OrderDetail(id)
}

func (f *AdminFacade) Metrics(window model.DateWindow) (analytics.Metrics, error) {
	return f.dashboard.Metrics(window)
}

func (f *AdminFacade) RevenueChart(window model.DateWindow) ([]analytics.RevenuePoint, error) {
	return f.dashboard.RevenueChart(window)
}

func (f *AdminFacade) StatusChart() ([]analytics.Slice, error) {
	return f.dashboard.StatusChart()
}

func (f *AdminFacade) GeoChart() ([]analytics.Slice, error) {
	return f.dashboard.GeoChart()
}

func (f *AdminFacade) PackageChart() ([]analytics.Slice, error) {
	return f.dashboard.PackageChart()
}

func (f *AdminFacade) Activity(q analytics.ActivityQuery) ([]model.ActivityEvent, error) {
	return f.dashboard.Activity(q)
}

func (f *AdminFacade) Testers() ([]model.Tester, error) {
	return f.dashboard.Testers()
}

func (f *AdminFacade) Countries() (map[string]model.Country, error) {
	return f.dashboard.Countries()
}

func (f *AdminFacade) SyncStatus() dashboard.Status {
	return f.dashboard.Status()
}

func (f *AdminFacade) Refresh(ctx context.Context) (dashboard.Status, error) {
	return f.dashboard.Refresh(ctx)
}

func (f *AdminFacade) WaitForUpdate(ctx context.Context, since uint64, timeout time.Duration) (dashboard.Status, bool, error) {
	return f.dashboard.WaitForUpdate(ctx, since, timeout)
}

func (f *AdminFacade) Formatter() *format.Formatter {
	return f.dashboard.Formatter()
}

func (f *AdminFacade) Location() *time.Location {
	return f.dashboard.Location()
}

func (f *AdminFacade) Now() time.Time {
	return f.dashboard.Now()
}

func (f *AdminFacade) UpdateStatuses(ctx context.Context, ids []int64, status model.OrderStatus) (*usecase.BulkResult, error) {
	return f.bulk.UpdateStatus(ctx, ids, status)
}

func (f *AdminFacade) AssignTester(ctx context.Context, ids []int64, testerID *int64) (*usecase.BulkResult, error) {
	return f.bulk.AssignTester(ctx, ids, testerID)
}

func (f *AdminFacade) DeleteOrders(ctx context.Context, ids []int64) (*usecase.BulkResult, error) {
	return f.bulk.Delete(ctx, ids)
}

func (f *AdminFacade) Preferences(ctx context.Context, operatorID int64) (model.Preferences, error) {
	return f.prefs.Get(ctx, operatorID)
}

func (f *AdminFacade) SavePreferences(ctx context.Context, prefs model.Preferences) (model.Preferences, error) {
	return f.prefs.Save(ctx, prefs)
}

func (f *AdminFacade) ResetPreferences(ctx context.Context, operatorID int64) error {
	return f.prefs.Reset(ctx, operatorID)
}

// Package facades provides controllable implementations of the HTTP facade contracts.
package facades

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
	testhelpers "github.com/polkiloo/paymentqa-dashboard/internal/test"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
)

// FixedNow is the clock used by facade stubs.
var FixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

// DashboardFacadeStub provides controllable behaviour for read endpoints.
type DashboardFacadeStub struct {
	OrdersFn      func(usecase.OrderQuery) (*usecase.OrderList, error)
	OrderDetailFn func(int64) (*analytics.OrderDetail, error)
	MetricsFn     func(model.DateWindow) (analytics.Metrics, error)
	RevenueFn     func(model.DateWindow) ([]analytics.RevenuePoint, error)
	SlicesFn      func() ([]analytics.Slice, error)
	ActivityFn    func(analytics.ActivityQuery) ([]model.ActivityEvent, error)
	TestersVal    []model.Tester
	CountriesVal  map[string]model.Country
	Sync          dashboard.Status
	RefreshErr    error
	WaitFn        func(context.Context, uint64, time.Duration) (dashboard.Status, bool, error)
	NotLoaded     bool
	FormatterVal  *format.Formatter
	LocationVal   *time.Location
}

func (s DashboardFacadeStub) loaded() error {
	if s.NotLoaded {
		return domainErrors.ErrNotLoaded
	}
	return nil
}

// Orders returns configured page or an empty one.
func (s DashboardFacadeStub) Orders(q usecase.OrderQuery) (*usecase.OrderList, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(q)
	}
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return &usecase.OrderList{
		Page: analytics.Page{Items: []model.Order{}, Page: q.Page, PageSize: q.PageSize},
		Now:  FixedNow,
	}, nil
}

// OrderDetail returns configured detail or not found.
func (s DashboardFacadeStub) OrderDetail(id int64) (*analytics.OrderDetail, error) {
	if s.OrderDetailFn != nil {
		return s.OrderDetailFn(id)
	}
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return nil, domainErrors.ErrNotFound
}

// Metrics returns configured metrics.
func (s DashboardFacadeStub) Metrics(w model.DateWindow) (analytics.Metrics, error) {
	if s.MetricsFn != nil {
		return s.MetricsFn(w)
	}
	return analytics.Metrics{}, s.loaded()
}

// RevenueChart returns configured series.
func (s DashboardFacadeStub) RevenueChart(w model.DateWindow) ([]analytics.RevenuePoint, error) {
	if s.RevenueFn != nil {
		return s.RevenueFn(w)
	}
	return nil, s.loaded()
}

func (s DashboardFacadeStub) slices() ([]analytics.Slice, error) {
	if s.SlicesFn != nil {
		return s.SlicesFn()
	}
	return nil, s.loaded()
}

// StatusChart returns configured slices.
func (s DashboardFacadeStub) StatusChart() ([]analytics.Slice, error) { return s.slices() }

// GeoChart returns configured slices.
func (s DashboardFacadeStub) GeoChart() ([]analytics.Slice, error) { return s.slices() }

// PackageChart returns configured slices.
func (s DashboardFacadeStub) PackageChart() ([]analytics.Slice, error) { return s.slices() }

// Activity returns configured events.
func (s DashboardFacadeStub) Activity(q analytics.ActivityQuery) ([]model.ActivityEvent, error) {
	if s.ActivityFn != nil {
		return s.ActivityFn(q)
	}
	return nil, s.loaded()
}

// Testers returns configured testers.
func (s DashboardFacadeStub) Testers() ([]model.Tester, error) {
	return s.TestersVal, s.loaded()
}

// Countries returns configured reference data.
func (s DashboardFacadeStub) Countries() (map[string]model.Country, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	if s.CountriesVal == nil {
		return map[string]model.Country{}, nil
	}
	return s.CountriesVal, nil
}

// SyncStatus returns configured status.
func (s DashboardFacadeStub) SyncStatus() dashboard.Status { return s.Sync }

// Refresh returns configured status and error.
func (s DashboardFacadeStub) Refresh(context.Context) (dashboard.Status, error) {
	return s.Sync, s.RefreshErr
}

// WaitForUpdate returns configured result or reports no update.
func (s DashboardFacadeStub) WaitForUpdate(ctx context.Context, since uint64, timeout time.Duration) (dashboard.Status, bool, error) {
	if s.WaitFn != nil {
		return s.WaitFn(ctx, since, timeout)
	}
	return s.Sync, false, nil
}

// Formatter returns configured formatter or an English one.
func (s DashboardFacadeStub) Formatter() *format.Formatter {
	if s.FormatterVal != nil {
		return s.FormatterVal
	}
	return format.New(language.English)
}

// Location returns configured location or UTC.
func (s DashboardFacadeStub) Location() *time.Location {
	if s.LocationVal != nil {
		return s.LocationVal
	}
	return time.UTC
}

// Now returns FixedNow.
func (s DashboardFacadeStub) Now() time.Time { return FixedNow.In(s.Location()) }

// BulkCall records a bulk facade invocation.
type BulkCall struct {
	Op       string
	IDs      []int64
	Status   model.OrderStatus
	TesterID *int64
}

// BulkFacadeStub records bulk operations.
type BulkFacadeStub struct {
	Result *usecase.BulkResult
	Err    error

	mu    *sync.Mutex
	calls *[]BulkCall
}

// NewBulkFacadeStub constructs stub returning result.
func NewBulkFacadeStub(result *usecase.BulkResult, err error) BulkFacadeStub {
	return BulkFacadeStub{Result: result, Err: err, mu: &sync.Mutex{}, calls: &[]BulkCall{}}
}

// Calls returns recorded invocations.
func (s BulkFacadeStub) Calls() []BulkCall {
	if s.calls == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]BulkCall(nil), *s.calls...)
}

func (s BulkFacadeStub) record(call BulkCall) (*usecase.BulkResult, error) {
	if s.calls != nil {
		s.mu.Lock()
		*s.calls = append(*s.calls, call)
		s.mu.Unlock()
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &usecase.BulkResult{Updated: call.IDs}, nil
}

// UpdateStatuses records the call.
func (s BulkFacadeStub) UpdateStatuses(_ context.Context, ids []int64, status model.OrderStatus) (*usecase.BulkResult, error) {
	return s.record(BulkCall{Op: "status", IDs: ids, Status: status})
}

// AssignTester records the call.
func (s BulkFacadeStub) AssignTester(_ context.Context, ids []int64, testerID *int64) (*usecase.BulkResult, error) {
	return s.record(BulkCall{Op: "tester", IDs: ids, TesterID: testerID})
}

// DeleteOrders records the call.
func (s BulkFacadeStub) DeleteOrders(_ context.Context, ids []int64) (*usecase.BulkResult, error) {
	return s.record(BulkCall{Op: "delete", IDs: ids})
}

// PreferencesFacadeStub serves preferences from an in-memory map.
type PreferencesFacadeStub struct {
	Store *testhelpers.PreferencesRepositoryStub
	Err   error
}

// Preferences returns stored settings or defaults.
func (s PreferencesFacadeStub) Preferences(ctx context.Context, operatorID int64) (model.Preferences, error) {
	if s.Err != nil {
		return model.Preferences{}, s.Err
	}
	if s.Store != nil {
		if p, err := s.Store.Get(ctx, operatorID); err == nil {
			return *p, nil
		}
	}
	return model.DefaultPreferences(operatorID), nil
}

// SavePreferences stores settings.
func (s PreferencesFacadeStub) SavePreferences(ctx context.Context, prefs model.Preferences) (model.Preferences, error) {
	if s.Err != nil {
		return model.Preferences{}, s.Err
	}
	if s.Store != nil {
		if err := s.Store.Save(ctx, prefs); err != nil {
			return model.Preferences{}, err
		}
	}
	return prefs, nil
}

// ResetPreferences removes stored settings.
func (s PreferencesFacadeStub) ResetPreferences(ctx context.Context, operatorID int64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Store != nil {
		_ = s.Store.Delete(ctx, operatorID)
	}
	return nil
}

// AdminFacadeStub aggregates facade dependencies for HTTP layer tests.
type AdminFacadeStub struct {
	testhelpers.AuthFacadeStub
	DashboardFacadeStub
	BulkFacadeStub
	PreferencesFacadeStub
}

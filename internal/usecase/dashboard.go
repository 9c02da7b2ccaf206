package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
)

// SnapshotSource provides read access to the loaded dashboard data.
type SnapshotSource interface {
	Snapshot() (*model.Snapshot, error)
	Status() dashboard.Status
	Refresh(ctx context.Context) (*model.Snapshot, error)
	WaitNewer(ctx context.Context, since uint64) (*model.Snapshot, error)
}

// OrderQuery is a list request: filter, sort and page.
type OrderQuery struct {
	Filter    model.FilterSpec
	SortKey   analytics.SortKey
	Direction analytics.Direction
	Page      int
	PageSize  int
}

// OrderList is one page of the filtered order list.
type OrderList struct {
	analytics.Page
	Now time.Time
}

// DashboardUseCase answers read queries over the current snapshot.
type DashboardUseCase struct {
	source    SnapshotSource
	formatter *format.Formatter
	location  *time.Location
	now       func() time.Time
}

// NewDashboardUseCase constructs DashboardUseCase. Calendar boundaries are computed in loc.
func NewDashboardUseCase(source SnapshotSource, formatter *format.Formatter, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{source: source, formatter: formatter, location: loc, now: time.Now}
}

func (u *DashboardUseCase) clock() time.Time {
	return u.now().In(u.location)
}

// Now returns the current time in the dashboard location.
func (u *DashboardUseCase) Now() time.Time {
	return u.clock()
}

// Location returns the zone calendar boundaries are computed in.
func (u *DashboardUseCase) Location() *time.Location {
	return u.location
}

// Formatter returns the locale formatter used for labels.
func (u *DashboardUseCase) Formatter() *format.Formatter {
	return u.formatter
}

// Orders filters, sorts and pages the order list.
func (u *DashboardUseCase) Orders(q OrderQuery) (*OrderList, error) {
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	if q.SortKey == "" {
		q.SortKey, q.Direction = analytics.DefaultSortKey, analytics.DefaultDirection
	}
	if q.Direction == "" {
		q.Direction = analytics.Asc
	}
	if q.PageSize <= 0 {
		q.PageSize = model.DefaultPageSize
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	now := u.clock()
	filtered := analytics.Filter(s.Orders, q.Filter, now)
	sorted := analytics.Sort(filtered, q.SortKey, q.Direction, u.formatter.Language())
	return &OrderList{Page: analytics.Paginate(sorted, q.Page, q.PageSize), Now: now}, nil
}

// Metrics computes every metric for window.
func (u *DashboardUseCase) Metrics(window model.DateWindow) (analytics.Metrics, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrInvalidFilter, err)
	}
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.ComputeMetrics(s.Orders, window, u.clock(), analytics.MetricOptions{
		Countries: s.Countries,
		Labels:    u.formatter,
	}), nil
}

// RevenueChart returns the daily revenue series covering window.
func (u *DashboardUseCase) RevenueChart(window model.DateWindow) ([]analytics.RevenuePoint, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrInvalidFilter, err)
	}
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	from, to := window.Bounds(u.clock())
	return analytics.RevenueSeries(s.Orders, from, to), nil
}

// StatusChart returns the order count per status.
func (u *DashboardUseCase) StatusChart() ([]analytics.Slice, error) {
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.StatusDistribution(s.Orders, u.formatter), nil
}

// GeoChart returns the ten most frequent geographies.
func (u *DashboardUseCase) GeoChart() ([]analytics.Slice, error) {
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.GeoDistribution(s.Orders, s.Countries), nil
}

// PackageChart returns the order count per package.
func (u *DashboardUseCase) PackageChart() ([]analytics.Slice, error) {
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.PackageDistribution(s.Orders, u.formatter), nil
}

// Activity returns the filtered feed, newest first.
func (u *DashboardUseCase) Activity(q analytics.ActivityQuery) ([]model.ActivityEvent, error) {
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.FilterActivity(s.Activity, q), nil
}

// OrderDetail builds the detail view of one order.
func (u *DashboardUseCase) OrderDetail(id int64) (*analytics.OrderDetail, error) {
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	detail, ok := analytics.BuildOrderDetail(s, id, u.clock())
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &detail, nil
}

// Testers lists the known testers.
func (u *DashboardUseCase) Testers() ([]model.Tester, error) {
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Testers, nil
}

// Countries returns the country reference data.
func (u *DashboardUseCase) Countries() (map[string]model.Country, error) {
	s, err := u.source.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Countries, nil
}

// Status reports the synchronisation state.
func (u *DashboardUseCase) Status() dashboard.Status {
	return u.source.Status()
}

// Refresh reloads the snapshot from the backend.
func (u *DashboardUseCase) Refresh(ctx context.Context) (dashboard.Status, error) {
	if _, err := u.source.Refresh(ctx); err != nil {
		return u.source.Status(), err
	}
	return u.source.Status(), nil
}

// WaitForUpdate blocks until a snapshot newer than since is published or timeout
// elapses. It reports whether a newer snapshot arrived.
func (u *DashboardUseCase) WaitForUpdate(ctx context.Context, since uint64, timeout time.Duration) (dashboard.Status, bool, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := u.source.WaitNewer(waitCtx, since); err != nil {
		if ctx.Err() != nil {
			return dashboard.Status{}, false, ctx.Err()
		}
		return u.source.Status(), false, nil
	}
	return u.source.Status(), true, nil
}

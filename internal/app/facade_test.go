package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/paymentqa-dashboard/internal/test"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
)

var _ handlers.AdminFacade = (*AdminFacade)(nil)

type facadeDeps struct {
	operators *testhelpers.OperatorRepositoryStub
	prefs     *testhelpers.PreferencesRepositoryStub
	updater   *testhelpers.StatusUpdaterStub
	loader    *dashboard.Loader
}

func newFacade(t *testing.T) (*AdminFacade, facadeDeps) {
	t.Helper()
	deps := facadeDeps{
		operators: testhelpers.NewOperatorRepositoryStub(),
		prefs:     testhelpers.NewPreferencesRepositoryStub(),
		updater:   &testhelpers.StatusUpdaterStub{Errors: map[int64]error{2: errors.New("locked")}},
	}
	snapshot := &model.Snapshot{
		Orders: []model.Order{
			{ID: 1, OrderNumber: "QA-1", Status: model.OrderStatusAwaitingPayment, PackageType: model.PackageMini, Geo: "DE", CreatedAt: time.Now()},
			{ID: 2, OrderNumber: "QA-2", Status: model.OrderStatusPaid, PackageType: model.PackageSingle, Geo: "FR", CreatedAt: time.Now()},
		},
		Testers:   []model.Tester{{ID: 4, Name: "Ivan", Active: true}},
		Countries: map[string]model.Country{"DE": {Name: "Germany"}},
		FetchedAt: time.Now(),
	}
	deps.loader = dashboard.NewLoader(testhelpers.FetcherStub{Snapshot: snapshot}, time.Second, discardLogger())

	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	facade := NewAdminFacade(
		usecase.NewAuthUseCase(deps.operators, testhelpers.HasherStub{}, strategy),
		usecase.NewDashboardUseCase(deps.loader, format.New(language.English), time.UTC),
		usecase.NewBulkUseCase(deps.updater, deps.loader, 2, discardLogger()),
		usecase.NewPreferencesUseCase(deps.prefs),
	)
	return facade, deps
}

func TestAdminFacadeAuth(t *testing.T) {
	facade, deps := newFacade(t)
	ctx := context.Background()

	_, err := facade.Authenticate(ctx, "admin", "secret")
	require.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)

	_, err = deps.operators.Create(ctx, "admin", "hash:secret")
	require.NoError(t, err)
	token, err := facade.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)
	require.Equal(t, "token", token)

	id, err := facade.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(99), id)
}

func TestAdminFacadeDashboard(t *testing.T) {
	facade, _ := newFacade(t)
	ctx := context.Background()

	_, err := facade.Orders(usecase.OrderQuery{Filter: model.DefaultFilterSpec()})
	require.ErrorIs(t, err, domainErrors.ErrNotLoaded)
	require.False(t, facade.SyncStatus().Loaded)

	st, err := facade.Refresh(ctx)
	require.NoError(t, err)
	require.True(t, st.Loaded)

	list, err := facade.Orders(usecase.OrderQuery{Filter: model.DefaultFilterSpec()})
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)

	_, err = facade.OrderDetail(1)
	require.NoError(t, err)

	metrics, err := facade.Metrics(model.RollingWindow(30))
	require.NoError(t, err)
	require.NotEmpty(t, metrics)

	series, err := facade.RevenueChart(model.RollingWindow(7))
	require.NoError(t, err)
	require.Len(t, series, 7)

	for _, chart := range []func() ([]analytics.Slice, error){facade.StatusChart, facade.GeoChart, facade.PackageChart} {
		slices, err := chart()
		require.NoError(t, err)
		require.NotEmpty(t, slices)
	}

	_, err = facade.Activity(analytics.ActivityQuery{})
	require.NoError(t, err)
	testers, err := facade.Testers()
	require.NoError(t, err)
	require.Len(t, testers, 1)
	countries, err := facade.Countries()
	require.NoError(t, err)
	require.Contains(t, countries, "DE")

	_, updated, err := facade.WaitForUpdate(ctx, st.Sequence, 10*time.Millisecond)
	require.NoError(t, err)
	require.False(t, updated)

	require.NotNil(t, facade.Formatter())
	require.Equal(t, time.UTC, facade.Location())
	require.False(t, facade.Now().IsZero())
}

func TestAdminFacadeBulk(t *testing.T) {
	facade, deps := newFacade(t)
	ctx := context.Background()
	_, err := deps.loader.Refresh(ctx)
	require.NoError(t, err)

	result, err := facade.UpdateStatuses(ctx, []int64{1, 2}, model.OrderStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, result.Updated)
	require.Len(t, result.Failed, 1)

	tester := int64(4)
	result, err = facade.AssignTester(ctx, []int64{2}, &tester)
	require.NoError(t, err)
	require.Equal(t, []int64{2}, result.Updated)

	result, err = facade.DeleteOrders(ctx, []int64{1, 3})
	require.NoError(t, err)
	require.Equal(t, []int64{3}, result.Missing)

	list, err := facade.Orders(usecase.OrderQuery{Filter: model.DefaultFilterSpec()})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
}

func TestAdminFacadePreferences(t *testing.T) {
	facade, deps := newFacade(t)
	ctx := context.Background()

	prefs, err := facade.Preferences(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, model.DefaultPageSize, prefs.PageSize)

	prefs.PageSize = 50
	_, err = facade.SavePreferences(ctx, prefs)
	require.NoError(t, err)
	require.Len(t, deps.prefs.Saved, 1)

	prefs, err = facade.Preferences(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, 50, prefs.PageSize)

	require.NoError(t, facade.ResetPreferences(ctx, 5))
	prefs, err = facade.Preferences(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, model.DefaultPageSize, prefs.PageSize)
}

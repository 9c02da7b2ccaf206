package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/format"
	"github.com/polkiloo/paymentqa-dashboard/internal/server/http/dto"
	testhelpers "github.com/polkiloo/paymentqa-dashboard/internal/test"
	"github.com/polkiloo/paymentqa-dashboard/internal/test/facades"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
)

// liveFacade serves dashboard reads from a real loader and stubs everything else.
type liveFacade struct {
	facades.AdminFacadeStub
	*usecase.DashboardUseCase
}

func (f liveFacade) SyncStatus() dashboard.Status { return f.DashboardUseCase.Status() }

// newStaleFacade loads one snapshot and then fails the next refresh.
func newStaleFacade(t *testing.T) liveFacade {
	t.Helper()
	fetches := 0
	fetcher := testhelpers.FetcherStub{Fn: func(context.Context) (*model.Snapshot, error) {
		fetches++
		if fetches > 1 {
			return nil, errors.New("backend down")
		}
		return &model.Snapshot{
			Orders: []model.Order{{
				ID:          1,
				OrderNumber: "QA-1",
				CreatedAt:   time.Now().Add(-time.Hour),
				Status:      model.OrderStatusAwaitingPayment,
				PackageType: model.PackageSingle,
				Geo:         "DE",
			}},
			Activity:  []model.ActivityEvent{{ID: "a", Type: model.EventNoteAdded, Description: "note", CreatedAt: time.Now()}},
			Countries: map[string]model.Country{"DE": {Name: "Germany", Flag: "🇩🇪"}},
		}, nil
	}}
	loader := dashboard.NewLoader(fetcher, time.Second, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	uc := usecase.NewDashboardUseCase(loader, format.New(language.English), time.UTC)

	_, err := uc.Refresh(context.Background())
	require.NoError(t, err)
	_, err = uc.Refresh(context.Background())
	require.Error(t, err)
	return liveFacade{DashboardUseCase: uc}
}

func TestSnapshotResponsesFlagStaleData(t *testing.T) {
	facade := newStaleFacade(t)
	metrics := NewMetricsHandler(facade, validate)

	for _, h := range []gin.HandlerFunc{metrics.Status, metrics.Geo, metrics.Packages} {
		resp := performRequest(t, http.MethodGet, "/charts/x", "/charts/x", h, 1, nil)
		require.Equal(t, http.StatusOK, resp.Code)
		chart := decode[dto.DistributionResponse](t, resp)
		require.NotEmpty(t, chart.Slices)
		require.True(t, chart.Stale)
		require.Equal(t, "backend down", chart.LastError)
	}

	resp := performRequest(t, http.MethodGet, "/charts/revenue", "/charts/revenue?range=7", metrics.Revenue, 1, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	revenue := decode[dto.RevenueChartResponse](t, resp)
	require.Len(t, revenue.Points, 7)
	require.True(t, revenue.Stale)

	activity := NewActivityHandler(facade, validate)
	resp = performRequest(t, http.MethodGet, "/activity", "/activity", activity.Feed, 1, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	feed := decode[dto.ActivityFeedResponse](t, resp)
	require.Len(t, feed.Events, 1)
	require.True(t, feed.Stale)
	require.Equal(t, "backend down", feed.LastError)

	orders := NewOrderHandler(facade, validate)
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/1", orders.Detail, 1, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	detail := decode[dto.OrderDetailResponse](t, resp)
	require.Equal(t, "QA-1", detail.Order.OrderNumber)
	require.True(t, detail.Stale)
	require.Equal(t, "backend down", detail.LastError)
}

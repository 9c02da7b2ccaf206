package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

func TestFilterByGeographySet(t *testing.T) {
	orders := []model.Order{
		newOrder(1, daysAgo(1), model.OrderStatusPaid, 10, withGeo("IN")),
		newOrder(2, daysAgo(1), model.OrderStatusPaid, 10, withGeo("ID")),
		newOrder(3, daysAgo(1), model.OrderStatusPaid, 10, withGeo("EG")),
	}
	spec := model.DefaultFilterSpec().WithGeo(model.NewGeoSet("IN", "EG"))

	require.Equal(t, []int64{1, 3}, ids(Filter(orders, spec, testNow)))
}

func TestFilterPredicates(t *testing.T) {
	orders := []model.Order{
		newOrder(1, daysAgo(1), model.OrderStatusPaid, 100, withUsername("alice"), withTester(7)),
		newOrder(2, daysAgo(2), model.OrderStatusCancelled, 50, withUsername("bob"), withPackage(model.PackageMini)),
		newOrder(3, daysAgo(3), model.OrderStatusAwaitingPayment, 250, withTelegram(424242), withGeo("")),
		newOrder(4, daysAgo(4), model.OrderStatusCompleted, 0, withoutPrice(), withTester(8)),
	}
	base := model.DefaultFilterSpec()

	cases := []struct {
		name string
		spec model.FilterSpec
		want []int64
	}{
		{"defaults", base, []int64{1, 2, 3, 4}},
		{"statuses", base.WithStatuses(model.NewStatusSet(model.OrderStatusPaid, model.OrderStatusCompleted)), []int64{1, 4}},
		{"package", base.WithPackage(model.PackageMini), []int64{2}},
		{"tester none", base.WithTester(model.TesterFilter{Mode: model.TesterNone}), []int64{2, 3}},
		{"tester id", base.WithTester(model.TesterFilter{Mode: model.TesterID, ID: 8}), []int64{4}},
		{"amount from", base.WithAmountRange(dec(60), nil), []int64{1, 3}},
		{"amount range", base.WithAmountRange(dec(50), dec(100)), []int64{1, 2}},
		{"query username", base.WithQuery("ALI"), []int64{1}},
		{"query telegram", base.WithQuery("4242"), []int64{3}},
		{"query order number", base.WithQuery("pqa-2"), []int64{2}},
		{"geo excludes missing", base.WithGeo(model.NewGeoSet("IN")), []int64{1, 2, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ids(Filter(orders, tc.spec, testNow)))
		})
	}
}

func TestFilterPeriods(t *testing.T) {
	today := model.StartOfDay(testNow)
	orders := []model.Order{
		newOrder(1, today.Add(time.Hour), model.OrderStatusPaid, 1),
		newOrder(2, today.Add(-time.Hour), model.OrderStatusPaid, 1),
		newOrder(3, testNow.AddDate(0, 0, -6), model.OrderStatusPaid, 1),
		newOrder(4, testNow.AddDate(0, 0, -6).Add(-time.Millisecond), model.OrderStatusPaid, 1),
		newOrder(5, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), model.OrderStatusPaid, 1),
		newOrder(6, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), model.OrderStatusPaid, 1),
	}
	base := model.DefaultFilterSpec()

	cases := []struct {
		period model.Period
		want   []int64
	}{
		{model.PeriodToday, []int64{1}},
		{model.PeriodYesterday, []int64{2}},
		{model.Period7Days, []int64{1, 2, 3}},
		{model.Period30Days, []int64{1, 2, 3, 4}},
		{model.PeriodMonth, []int64{1, 2, 3, 4}},
		{model.PeriodPrevMonth, []int64{5}},
		{model.PeriodAll, []int64{1, 2, 3, 4, 5, 6}},
	}
	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			require.Equal(t, tc.want, ids(Filter(orders, base.WithPeriod(tc.period), testNow)))
		})
	}
}

func TestFilterPrevMonthAcrossYear(t *testing.T) {
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	orders := []model.Order{
		newOrder(1, time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC), model.OrderStatusPaid, 1),
		newOrder(2, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), model.OrderStatusPaid, 1),
	}
	spec := model.DefaultFilterSpec().WithPeriod(model.PeriodPrevMonth)
	require.Equal(t, []int64{1}, ids(Filter(orders, spec, now)))
}

func TestFilterCustomRangeIsInclusive(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	orders := []model.Order{
		newOrder(1, from, model.OrderStatusPaid, 1),
		newOrder(2, from.Add(-time.Millisecond), model.OrderStatusPaid, 1),
		newOrder(3, to.Add(24*time.Hour-time.Millisecond), model.OrderStatusPaid, 1),
		newOrder(4, to.Add(24*time.Hour), model.OrderStatusPaid, 1),
	}

	spec := model.DefaultFilterSpec().WithCustomRange(&from, &to)
	require.Equal(t, []int64{1, 3}, ids(Filter(orders, spec, testNow)))

	openEnded := model.DefaultFilterSpec().WithCustomRange(&from, nil)
	require.Equal(t, []int64{1, 3, 4}, ids(Filter(orders, openEnded, testNow)))
}

func TestFilterIsIdempotent(t *testing.T) {
	orders := []model.Order{
		newOrder(1, daysAgo(1), model.OrderStatusPaid, 100, withGeo("IN")),
		newOrder(2, daysAgo(40), model.OrderStatusPaid, 100, withGeo("IN")),
		newOrder(3, daysAgo(2), model.OrderStatusCancelled, 20, withGeo("EG")),
		newOrder(4, daysAgo(3), model.OrderStatusAwaitingPayment, 70, withGeo("IN"), withUsername("zed")),
	}
	specs := []model.FilterSpec{
		model.DefaultFilterSpec(),
		model.DefaultFilterSpec().WithGeo(model.NewGeoSet("IN")).WithAmountRange(dec(50), nil),
		model.DefaultFilterSpec().WithQuery("zed").WithPeriod(model.PeriodAll),
	}
	for _, spec := range specs {
		once := Filter(orders, spec, testNow)
		twice := Filter(once, spec, testNow)
		require.Equal(t, once, twice)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	orders := []model.Order{
		newOrder(1, daysAgo(1), model.OrderStatusPaid, 1),
		newOrder(2, daysAgo(1), model.OrderStatusCancelled, 1),
	}
	spec := model.DefaultFilterSpec().WithStatuses(model.NewStatusSet(model.OrderStatusCancelled))
	_ = Filter(orders, spec, testNow)
	require.Equal(t, []int64{1, 2}, ids(orders))
}

package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// MetricID names one of the dashboard metrics.
type MetricID string

const (
	MetricTotalRevenue MetricID = "totalRevenue"
	MetricMonthRevenue MetricID = "monthRevenue"
	MetricAverageCheck MetricID = "averageCheck"
	MetricLTV          MetricID = "ltv"
	MetricAwaiting     MetricID = "awaiting"
	MetricPaid         MetricID = "paid"
	MetricInProgress   MetricID = "inProgress"
	MetricTotalOrders  MetricID = "totalOrders"
	MetricClientsTotal MetricID = "clientsTotal"
	MetricNewToday     MetricID = "newToday"
	MetricRepeat       MetricID = "repeat"
	MetricConversion   MetricID = "conversion"
	MetricAbandoned    MetricID = "abandoned"
	MetricTimeToPay    MetricID = "timeToPay"
	MetricTopGeo       MetricID = "topGeo"
	MetricTopPackage   MetricID = "topPackage"
)

// MetricIDs lists metrics in display order.
var MetricIDs = []MetricID{
	MetricTotalRevenue, MetricMonthRevenue, MetricAverageCheck, MetricLTV,
	MetricAwaiting, MetricPaid, MetricInProgress, MetricTotalOrders,
	MetricClientsTotal, MetricNewToday, MetricRepeat, MetricConversion,
	MetricAbandoned, MetricTimeToPay, MetricTopGeo, MetricTopPackage,
}

// Trend classifies a delta against a one percent deadband.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Metric is a value compared with the previous period.
type Metric struct {
	ID            MetricID
	Value         float64
	PreviousValue float64
	Delta         float64
	Trend         Trend

	// Amount is the monetary figure behind money metrics and status counts.
	Amount *decimal.Decimal
	// Percent is the share shown next to repeat, conversion and top metrics.
	Percent *float64
	// Key and Label identify the winner of the top geo and top package metrics.
	Key   string
	Label string
}

// Metrics maps every MetricID to its value.
type Metrics map[MetricID]Metric

// MetricOptions supplies reference data used to label top metrics.
type MetricOptions struct {
	Countries map[string]model.Country
	Labels    Labeler
}

const abandonAfter = 24 * time.Hour

// PercentDelta returns the relative change in percent. A zero or negative previous
// value yields 100 when value is positive and 0 otherwise.
func PercentDelta(value, previous float64) float64 {
	var delta float64
	switch {
	case previous > 0:
		delta = (value - previous) / previous * 100
	case value > 0:
		delta = 100
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0
	}
	return delta
}

// TrendOf classifies delta.
func TrendOf(delta float64) Trend {
	switch {
	case delta > 1:
		return TrendUp
	case delta < -1:
		return TrendDown
	default:
		return TrendFlat
	}
}

func newMetric(id MetricID, value, previous float64) Metric {
	delta := PercentDelta(value, previous)
	return Metric{ID: id, Value: value, PreviousValue: previous, Delta: delta, Trend: TrendOf(delta)}
}

func (m Metric) withAmount(d decimal.Decimal) Metric {
	m.Amount = &d
	return m
}

func (m Metric) withPercent(p float64) Metric {
	m.Percent = &p
	return m
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func floored(v float64) float64 {
	return math.Max(v, 0)
}

// ComputeMetrics derives all dashboard metrics. Window-scoped metrics compare the
// window with the equally long period before it; the rest ignore the window and
// compare against fixed synthetic baselines.
func ComputeMetrics(orders []model.Order, window model.DateWindow, now time.Time, opts MetricOptions) Metrics {
	labels := labelerOrDefault(opts.Labels)
	from, to := window.Bounds(now)
	prevFrom, prevTo := window.Comparison(now)

	current := where(orders, func(o model.Order) bool { return inRange(o.CreatedAt, from, to) })
	previous := where(orders, func(o model.Order) bool { return inRange(o.CreatedAt, prevFrom, prevTo) })
	eligible := func(o model.Order) bool { return o.Status.RevenueEligible() }
	withStatus := func(s model.OrderStatus) func(model.Order) bool {
		return func(o model.Order) bool { return o.Status == s }
	}

	result := make(Metrics, len(MetricIDs))

	currentRevenue := where(current, eligible)
	previousRevenue := where(previous, eligible)
	revenue, prevRevenue := sumPrices(currentRevenue), sumPrices(previousRevenue)
	result[MetricTotalRevenue] = newMetric(MetricTotalRevenue, revenue.InexactFloat64(), prevRevenue.InexactFloat64()).
		withAmount(revenue)

	month := monthRevenue(orders, now, 0)
	prevMonth := monthRevenue(orders, now, -1)
	result[MetricMonthRevenue] = newMetric(MetricMonthRevenue, month.InexactFloat64(), prevMonth.InexactFloat64()).
		withAmount(month)

	avg, prevAvg := average(revenue, len(currentRevenue)), average(prevRevenue, len(previousRevenue))
	result[MetricAverageCheck] = newMetric(MetricAverageCheck, avg.InexactFloat64(), prevAvg.InexactFloat64()).
		withAmount(avg)

	clients := aggregateBy(orders, ClientKey)
	lifetime := decimal.Zero
	for _, c := range clients {
		lifetime = lifetime.Add(c.total)
	}
	ltv := average(lifetime, len(clients))
	result[MetricLTV] = newMetric(MetricLTV, ltv.InexactFloat64(), ltv.InexactFloat64()*0.85).withAmount(ltv)

	for _, sc := range []struct {
		id     MetricID
		status model.OrderStatus
	}{
		{MetricAwaiting, model.OrderStatusAwaitingPayment},
		{MetricPaid, model.OrderStatusPaid},
		{MetricInProgress, model.OrderStatusInProgress},
	} {
		cur := where(current, withStatus(sc.status))
		prev := where(previous, withStatus(sc.status))
		result[sc.id] = newMetric(sc.id, float64(len(cur)), float64(len(prev))).withAmount(sumPrices(cur))
	}

	result[MetricTotalOrders] = newMetric(MetricTotalOrders, float64(len(current)), float64(len(previous)))

	unique := float64(len(clients))
	result[MetricClientsTotal] = newMetric(MetricClientsTotal, unique, floored(unique-2))

	newToday := float64(newClientsSince(orders, model.StartOfDay(now)))
	result[MetricNewToday] = newMetric(MetricNewToday, newToday, floored(newToday-1))

	repeat := 0
	for _, c := range clients {
		if c.count > 1 {
			repeat++
		}
	}
	result[MetricRepeat] = newMetric(MetricRepeat, float64(repeat), floored(float64(repeat-1))).
		withPercent(ratio(repeat, len(clients)))

	conversion := ratio(len(where(orders, eligible)), len(orders))
	result[MetricConversion] = newMetric(MetricConversion, conversion, floored(conversion-3)).withPercent(conversion)

	abandoned := float64(len(where(orders, func(o model.Order) bool {
		return o.Status == model.OrderStatusAwaitingPayment && now.Sub(o.CreatedAt) > abandonAfter
	})))
	result[MetricAbandoned] = newMetric(MetricAbandoned, abandoned, floored(abandoned-1))

	minutes := averageMinutesToPay(orders)
	result[MetricTimeToPay] = newMetric(MetricTimeToPay, minutes, minutes+5)

	result[MetricTopGeo] = topMetric(MetricTopGeo, orders, 5, func(o model.Order) string { return o.Geo },
		func(key string) string { return CountryLabel(opts.Countries, key) })
	result[MetricTopPackage] = topMetric(MetricTopPackage, orders, 4, func(o model.Order) string { return string(o.PackageType) },
		func(key string) string { return labels.PackageLabel(model.PackageType(key)) })

	return result
}

func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// monthRevenue sums eligible orders paid in the calendar month offset months from now.
func monthRevenue(orders []model.Order, now time.Time, offset int) decimal.Decimal {
	ref := time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, now.Location())
	return sumPrices(where(orders, func(o model.Order) bool {
		if o.PaidAt == nil || !o.Status.RevenueEligible() {
			return false
		}
		paid := o.PaidAt.In(now.Location())
		return paid.Year() == ref.Year() && paid.Month() == ref.Month()
	}))
}

// newClientsSince counts clients whose earliest order was created at or after since.
func newClientsSince(orders []model.Order, since time.Time) int {
	earliest := make(map[string]time.Time)
	for _, o := range orders {
		key := ClientKey(o)
		if first, ok := earliest[key]; !ok || o.CreatedAt.Before(first) {
			earliest[key] = o.CreatedAt
		}
	}
	n := 0
	for _, first := range earliest {
		if !first.Before(since) {
			n++
		}
	}
	return n
}

func averageMinutesToPay(orders []model.Order) float64 {
	var total float64
	n := 0
	for _, o := range orders {
		if o.PaidAt == nil {
			continue
		}
		total += o.PaidAt.Sub(o.CreatedAt).Minutes()
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func topMetric(id MetricID, orders []model.Order, baselineGap float64, key func(model.Order) string, label func(string) string) Metric {
	groups := aggregateBy(orders, key)
	slices.SortStableFunc(groups, func(a, b group) int { return b.count - a.count })
	if len(groups) == 0 {
		return newMetric(id, 0, 0).withPercent(0)
	}
	top := groups[0]
	share := ratio(top.count, len(orders))
	m := newMetric(id, share, floored(share-baselineGap)).withPercent(share)
	m.Key = top.key
	m.Label = label(top.key)
	return m
}

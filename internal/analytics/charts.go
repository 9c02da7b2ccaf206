package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// geoChartLimit caps the geography chart.
const geoChartLimit = 10

// RevenuePoint is one day of the revenue series.
type RevenuePoint struct {
	Date   string
	Label  string
	Total  decimal.Decimal
	Orders int
}

// Slice is one bucket of a distribution chart.
type Slice struct {
	Key   string
	Label string
	Count int
	Total decimal.Decimal
}

// RevenueSeries buckets paid orders by paidAt day over [from, to]. Days are taken
// in from's location and every day of the range is present, zero-filled.
func RevenueSeries(orders []model.Order, from, to time.Time) []RevenuePoint {
	loc := from.Location()
	points := []RevenuePoint{}
	index := make(map[string]int)
	for cursor := from; !cursor.After(to); cursor = cursor.AddDate(0, 0, 1) {
		key := cursor.Format(time.DateOnly)
		index[key] = len(points)
		points = append(points, RevenuePoint{Date: key, Label: cursor.Format("02.01"), Total: decimal.Zero})
	}

	for _, o := range orders {
		if o.PaidAt == nil || !inRange(*o.PaidAt, from, to) {
			continue
		}
		i, ok := index[o.PaidAt.In(loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		points[i].Total = points[i].Total.Add(o.Price())
		points[i].Orders++
	}
	return points
}

// StatusDistribution counts orders per status. Only present statuses appear, in
// canonical order, followed by unknown statuses in first-seen order.
func StatusDistribution(orders []model.Order, labels Labeler) []Slice {
	labels = labelerOrDefault(labels)
	groups := aggregateBy(orders, func(o model.Order) string { return string(o.Status) })
	rank := func(key string) int {
		if i := slices.Index(model.OrderStatuses, model.OrderStatus(key)); i >= 0 {
			return i
		}
		return len(model.OrderStatuses)
	}
	slices.SortStableFunc(groups, func(a, b group) int { return rank(a.key) - rank(b.key) })
	return toSlices(groups, func(key string) string { return labels.StatusLabel(model.OrderStatus(key)) })
}

// GeoDistribution returns the ten most frequent geographies, most orders first.
func GeoDistribution(orders []model.Order, countries map[string]model.Country) []Slice {
	groups := aggregateBy(orders, func(o model.Order) string { return o.Geo })
	slices.SortStableFunc(groups, func(a, b group) int { return b.count - a.count })
	if len(groups) > geoChartLimit {
		groups = groups[:geoChartLimit]
	}
	return toSlices(groups, func(key string) string { return CountryLabel(countries, key) })
}

// PackageDistribution counts orders per package in first-seen order.
func PackageDistribution(orders []model.Order, labels Labeler) []Slice {
	labels = labelerOrDefault(labels)
	groups := aggregateBy(orders, func(o model.Order) string { return string(o.PackageType) })
	return toSlices(groups, func(key string) string { return labels.PackageLabel(model.PackageType(key)) })
}

func toSlices(groups []group, label func(string) string) []Slice {
	out := make([]Slice, 0, len(groups))
	for _, g := range groups {
		out = append(out, Slice{Key: g.key, Label: label(g.key), Count: g.count, Total: g.total})
	}
	return out
}

// Package analytics holds the pure order pipeline of the dashboard: filtering,
// sorting, paging, metrics and chart datasets. Nothing here performs I/O or keeps
// state; every function may be called concurrently on a shared snapshot.
package analytics

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// ClientKey identifies the customer behind an order: telegram id, else username,
// else the order id itself. Every per-client aggregation goes through it.
func ClientKey(o model.Order) string {
	if o.Client.TelegramID != nil {
		return "tg:" + strconv.FormatInt(*o.Client.TelegramID, 10)
	}
	if o.Client.Username != "" {
		return "user:" + o.Client.Username
	}
	return "order:" + strconv.FormatInt(o.ID, 10)
}

// group is one bucket of an aggregation.
type group struct {
	key   string
	count int
	total decimal.Decimal
}

// aggregateBy buckets orders by key, keeping buckets in first-seen order.
func aggregateBy(orders []model.Order, key func(model.Order) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, o := range orders {
		k := key(o)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k, total: decimal.Zero})
		}
		groups[i].count++
		groups[i].total = groups[i].total.Add(o.Price())
	}
	return groups
}

func sumPrices(orders []model.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Price())
	}
	return total
}

func where(orders []model.Order, pred func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if pred(o) {
			out = append(out, o)
		}
	}
	return out
}

// Labeler names statuses and packages for display.
type Labeler interface {
	StatusLabel(model.OrderStatus) string
	PackageLabel(model.PackageType) string
}

var packageLabels = map[model.PackageType]string{
	model.PackageSingle:   "Single Test",
	model.PackageMini:     "Mini Audit",
	model.PackageRetainer: "Retainer",
	model.PackageCustom:   "Custom",
}

type rawLabels struct{}

func (rawLabels) StatusLabel(s model.OrderStatus) string { return string(s) }

func (rawLabels) PackageLabel(p model.PackageType) string {
	if label, ok := packageLabels[p]; ok {
		return label
	}
	return string(p)
}

// DefaultLabels uses status keys as-is and the catalogue package names.
var DefaultLabels Labeler = rawLabels{}

func labelerOrDefault(l Labeler) Labeler {
	if l == nil {
		return DefaultLabels
	}
	return l
}

// CountryLabel renders "flag name" for a known country, or the code itself.
func CountryLabel(countries map[string]model.Country, code string) string {
	c, ok := countries[code]
	if !ok {
		return code
	}
	name := c.Name
	if name == "" {
		name = code
	}
	return strings.TrimSpace(c.Flag + " " + name)
}

package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type orderOpt func(*model.Order)

func newOrder(id int64, created time.Time, status model.OrderStatus, price float64, opts ...orderOpt) model.Order {
	o := model.Order{
		ID:          id,
		OrderNumber: "PQA-" + decimal.NewFromInt(id).String(),
		CreatedAt:   created,
		Status:      status,
		PackageType: model.PackageSingle,
		Geo:         "IN",
		PriceEur:    decimal.NewNullDecimal(decimal.NewFromFloat(price)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func withPaidAt(t time.Time) orderOpt {
	return func(o *model.Order) { o.PaidAt = &t }
}

func withGeo(geo string) orderOpt {
	return func(o *model.Order) { o.Geo = geo }
}

func withPackage(p model.PackageType) orderOpt {
	return func(o *model.Order) { o.PackageType = p }
}

func withTelegram(id int64) orderOpt {
	return func(o *model.Order) { o.Client.TelegramID = &id }
}

func withUsername(name string) orderOpt {
	return func(o *model.Order) { o.Client.Username = name }
}

func withTester(id int64) orderOpt {
	return func(o *model.Order) { o.TesterID = &id }
}

func withoutPrice() orderOpt {
	return func(o *model.Order) { o.PriceEur = decimal.NullDecimal{} }
}

func ids(orders []model.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

const detailActivityLimit = 5

// ClientSummary describes the order history of one client.
type ClientSummary struct {
	Key          string
	TotalOrders  int
	Spent        decimal.Decimal
	FirstOrderAt *time.Time
	LastOrderAt  *time.Time
}

// Timeline flags the lifecycle steps an order has reached.
type Timeline struct {
	Created   bool
	Paid      bool
	Started   bool
	Completed bool
}

// OrderDetail is everything the order page shows.
type OrderDetail struct {
	Order    model.Order
	Tester   *model.Tester
	Client   ClientSummary
	Previous *model.Order
	Next     *model.Order
	Activity []model.ActivityEvent
	Timeline Timeline
	Overdue  bool
	// HoursWaiting is set while no payment proof has arrived.
	HoursWaiting *int
}

// SummarizeClient aggregates every order sharing the client of order.
func SummarizeClient(orders []model.Order, order model.Order) ClientSummary {
	key := ClientKey(order)
	summary := ClientSummary{Key: key, Spent: decimal.Zero}
	for _, o := range orders {
		if ClientKey(o) != key {
			continue
		}
		summary.TotalOrders++
		if o.Status.RevenueEligible() {
			summary.Spent = summary.Spent.Add(o.Price())
		}
		created := o.CreatedAt
		if summary.FirstOrderAt == nil || created.Before(*summary.FirstOrderAt) {
			summary.FirstOrderAt = &created
		}
		if summary.LastOrderAt == nil || created.After(*summary.LastOrderAt) {
			summary.LastOrderAt = &created
		}
	}
	return summary
}

// Neighbours returns the orders created just before and after id, wrapping around
// at both ends.
func Neighbours(orders []model.Order, id int64) (prev, next model.Order, ok bool) {
	byCreated := slices.Clone(orders)
	slices.SortStableFunc(byCreated, func(a, b model.Order) int { return a.CreatedAt.Compare(b.CreatedAt) })
	idx := slices.IndexFunc(byCreated, func(o model.Order) bool { return o.ID == id })
	if idx < 0 {
		return model.Order{}, model.Order{}, false
	}
	n := len(byCreated)
	return byCreated[(idx-1+n)%n], byCreated[(idx+1)%n], true
}

// TimelineOf reports reached lifecycle steps.
func TimelineOf(o model.Order) Timeline {
	return Timeline{
		Created:   true,
		Paid:      o.PaidAt != nil,
		Started:   o.StartedAt != nil || o.Status == model.OrderStatusCompleted,
		Completed: o.CompletedAt != nil,
	}
}

// BuildOrderDetail assembles the detail view of order id from a snapshot.
func BuildOrderDetail(s *model.Snapshot, id int64, now time.Time) (OrderDetail, bool) {
	order, ok := s.FindOrder(id)
	if !ok {
		return OrderDetail{}, false
	}

	detail := OrderDetail{
		Order:    order,
		Client:   SummarizeClient(s.Orders, order),
		Activity: OrderActivity(s.Activity, id, detailActivityLimit),
		Timeline: TimelineOf(order),
		Overdue:  order.Overdue(now),
	}
	if order.TesterID != nil {
		if t, found := s.FindTester(*order.TesterID); found {
			detail.Tester = &t
		}
	}
	if prev, next, found := Neighbours(s.Orders, id); found {
		detail.Previous, detail.Next = &prev, &next
	}
	if order.PaymentProof == nil {
		hours := int(math.Round(now.Sub(order.CreatedAt).Hours()))
		detail.HoursWaiting = &hours
	}
	return detail, true
}

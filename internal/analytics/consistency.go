package analytics

import (
	"time"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// Issue is a status/timestamp inconsistency found in upstream data.
type Issue struct {
	OrderID     int64
	OrderNumber string
	Problem     string
}

// CheckConsistency reports orders whose status, timestamps or price contradict each
// other. Data is never rejected; the issues are informational.
func CheckConsistency(orders []model.Order) []Issue {
	var issues []Issue
	report := func(o model.Order, problem string) {
		issues = append(issues, Issue{OrderID: o.ID, OrderNumber: o.OrderNumber, Problem: problem})
	}
	before := func(a, b *time.Time) bool { return a != nil && b != nil && a.Before(*b) }

	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPaid, model.OrderStatusInProgress, model.OrderStatusCompleted:
			if o.PaidAt == nil {
				report(o, "status "+string(o.Status)+" without paidAt")
			}
		}
		if o.Status == model.OrderStatusCompleted && o.CompletedAt == nil {
			report(o, "status completed without completedAt")
		}
		if !o.Status.Valid() {
			report(o, "unknown status "+string(o.Status))
		}
		created := o.CreatedAt
		if before(o.PaidAt, &created) {
			report(o, "paidAt before createdAt")
		}
		if before(o.StartedAt, o.PaidAt) {
			report(o, "startedAt before paidAt")
		}
		if before(o.CompletedAt, o.StartedAt) {
			report(o, "completedAt before startedAt")
		}
		if o.PriceEur.Valid && o.PriceEur.Decimal.IsNegative() {
			report(o, "negative price")
		}
	}
	return issues
}

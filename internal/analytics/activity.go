package analytics

import (
	"slices"
	"strings"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// DefaultActivityLimit is the feed length when no limit is requested.
const DefaultActivityLimit = 20

// ActivityQuery narrows the activity feed. An empty Type or "all" matches every event.
type ActivityQuery struct {
	Type  model.EventType
	Query string
	Limit int
}

// SortActivity returns events newest first. Equal timestamps keep input order.
func SortActivity(events []model.ActivityEvent) []model.ActivityEvent {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b model.ActivityEvent) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

// FilterActivity applies type and description filters, then the limit, keeping the
// order of events.
func FilterActivity(events []model.ActivityEvent, q ActivityQuery) []model.ActivityEvent {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	query := strings.ToLower(q.Query)

	out := make([]model.ActivityEvent, 0, min(limit, len(events)))
	for _, e := range events {
		if len(out) == limit {
			break
		}
		if q.Type != "" && q.Type != "all" && e.Type != q.Type {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Description), query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// OrderActivity returns the newest limit events of one order.
func OrderActivity(events []model.ActivityEvent, orderID int64, limit int) []model.ActivityEvent {
	var related []model.ActivityEvent
	for _, e := range events {
		if e.OrderID != nil && *e.OrderID == orderID {
			related = append(related, e)
		}
	}
	related = SortActivity(related)
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related
}

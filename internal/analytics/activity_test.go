package analytics

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

func event(id int64, typ model.EventType, orderID int64, at time.Time, description string) model.ActivityEvent {
	e := model.ActivityEvent{ID: strconv.FormatInt(id, 10), Type: typ, CreatedAt: at, Description: description}
	if orderID > 0 {
		e.OrderID = &orderID
	}
	return e
}

func eventIDs(events []model.ActivityEvent) []int64 {
	out := make([]int64, 0, len(events))
	for _, e := range events {
		id, _ := strconv.ParseInt(e.ID, 10, 64)
		out = append(out, id)
	}
	return out
}

func TestSortActivityNewestFirstStable(t *testing.T) {
	events := []model.ActivityEvent{
		event(1, model.EventOrderCreated, 1, daysAgo(3), "a"),
		event(2, model.EventOrderPaid, 1, daysAgo(1), "b"),
		event(3, model.EventNoteAdded, 1, daysAgo(1), "c"),
		event(4, model.EventAdminAction, 0, daysAgo(2), "d"),
	}
	require.Equal(t, []int64{2, 3, 4, 1}, eventIDs(SortActivity(events)))
	require.Equal(t, "1", events[0].ID)
}

func TestFilterActivity(t *testing.T) {
	events := []model.ActivityEvent{
		event(1, model.EventOrderPaid, 1, daysAgo(1), "Order PQA-1 paid via USDT"),
		event(2, model.EventNoteAdded, 2, daysAgo(2), "Client asked for invoice"),
		event(3, model.EventOrderPaid, 3, daysAgo(3), "Order PQA-3 paid via card"),
		event(4, model.EventOrderPaid, 4, daysAgo(4), "Order PQA-4 paid via usdt"),
	}

	require.Equal(t, []int64{1, 3, 4}, eventIDs(FilterActivity(events, ActivityQuery{Type: model.EventOrderPaid})))
	require.Equal(t, []int64{1, 2, 3, 4}, eventIDs(FilterActivity(events, ActivityQuery{Type: "all"})))
	require.Equal(t, []int64{1, 4}, eventIDs(FilterActivity(events, ActivityQuery{Query: "USDT"})))
	require.Equal(t, []int64{1, 3}, eventIDs(FilterActivity(events, ActivityQuery{Type: model.EventOrderPaid, Limit: 2})))
	require.Empty(t, FilterActivity(events, ActivityQuery{Type: model.EventTesterCreated}))
}

func TestFilterActivityDefaultLimit(t *testing.T) {
	var events []model.ActivityEvent
	for i := int64(1); i <= 30; i++ {
		events = append(events, event(i, model.EventNoteAdded, 0, daysAgo(int(i)), "note"))
	}
	require.Len(t, FilterActivity(events, ActivityQuery{}), DefaultActivityLimit)
}

func TestOrderActivity(t *testing.T) {
	events := []model.ActivityEvent{
		event(1, model.EventOrderCreated, 7, daysAgo(5), ""),
		event(2, model.EventOrderPaid, 8, daysAgo(4), ""),
		event(3, model.EventOrderPaid, 7, daysAgo(3), ""),
		event(4, model.EventAdminAction, 0, daysAgo(2), ""),
		event(5, model.EventStatusChanged, 7, daysAgo(1), ""),
	}
	require.Equal(t, []int64{5, 3, 1}, eventIDs(OrderActivity(events, 7, 5)))
	require.Equal(t, []int64{5, 3}, eventIDs(OrderActivity(events, 7, 2)))
	require.Empty(t, OrderActivity(events, 99, 5))
}

func TestNeighboursWrapAround(t *testing.T) {
	orders := []model.Order{
		newOrder(10, daysAgo(1), model.OrderStatusPaid, 1),
		newOrder(20, daysAgo(3), model.OrderStatusPaid, 1),
		newOrder(30, daysAgo(2), model.OrderStatusPaid, 1),
	}

	prev, next, ok := Neighbours(orders, 30)
	require.True(t, ok)
	require.Equal(t, int64(20), prev.ID)
	require.Equal(t, int64(10), next.ID)

	prev, next, ok = Neighbours(orders, 20)
	require.True(t, ok)
	require.Equal(t, int64(10), prev.ID)
	require.Equal(t, int64(30), next.ID)

	_, _, ok = Neighbours(orders, 99)
	require.False(t, ok)
}

func TestBuildOrderDetail(t *testing.T) {
	tester := int64(5)
	orders := []model.Order{
		newOrder(1, daysAgo(10), model.OrderStatusCompleted, 100, withTelegram(9), withPaidAt(daysAgo(9)), withTester(tester)),
		newOrder(2, testNow.Add(-50*time.Hour), model.OrderStatusAwaitingPayment, 60, withTelegram(9)),
		newOrder(3, daysAgo(1), model.OrderStatusCancelled, 40, withTelegram(9)),
		newOrder(4, daysAgo(4), model.OrderStatusPaid, 10, withUsername("other")),
	}
	snapshot := &model.Snapshot{
		Orders:  orders,
		Testers: []model.Tester{{ID: tester, Name: "Ira"}},
		Activity: []model.ActivityEvent{
			event(1, model.EventOrderCreated, 2, testNow.Add(-50*time.Hour), "created"),
			event(2, model.EventOrderCreated, 1, daysAgo(10), "created"),
		},
	}

	detail, ok := BuildOrderDetail(snapshot, 2, testNow)
	require.True(t, ok)
	require.Nil(t, detail.Tester)
	require.True(t, detail.Overdue)
	require.NotNil(t, detail.HoursWaiting)
	require.Equal(t, 50, *detail.HoursWaiting)
	require.Equal(t, []int64{1}, eventIDs(detail.Activity))
	require.Equal(t, Timeline{Created: true}, detail.Timeline)

	require.Equal(t, "tg:9", detail.Client.Key)
	require.Equal(t, 3, detail.Client.TotalOrders)
	require.Equal(t, "100", detail.Client.Spent.String())
	require.Equal(t, daysAgo(10), *detail.Client.FirstOrderAt)
	require.Equal(t, daysAgo(1), *detail.Client.LastOrderAt)

	require.Equal(t, int64(4), detail.Previous.ID)
	require.Equal(t, int64(3), detail.Next.ID)

	detail, ok = BuildOrderDetail(snapshot, 1, testNow)
	require.True(t, ok)
	require.NotNil(t, detail.Tester)
	require.Equal(t, "Ira", detail.Tester.Name)
	require.False(t, detail.Overdue)
	require.Equal(t, Timeline{Created: true, Paid: true, Started: true}, detail.Timeline)

	_, ok = BuildOrderDetail(snapshot, 404, testNow)
	require.False(t, ok)
}

func TestCheckConsistency(t *testing.T) {
	paid := daysAgo(2)
	orders := []model.Order{
		newOrder(1, daysAgo(3), model.OrderStatusPaid, 10, withPaidAt(paid)),
		newOrder(2, daysAgo(3), model.OrderStatusPaid, 10),
		newOrder(3, daysAgo(1), model.OrderStatusCompleted, 10, withPaidAt(paid)),
		newOrder(4, daysAgo(3), "lost", -5),
	}

	issues := CheckConsistency(orders)
	problems := map[int64][]string{}
	for _, is := range issues {
		problems[is.OrderID] = append(problems[is.OrderID], is.Problem)
	}

	require.NotContains(t, problems, int64(1))
	require.Equal(t, []string{"status paid without paidAt"}, problems[2])
	require.Equal(t, []string{"status completed without completedAt", "paidAt before createdAt"}, problems[3])
	require.Equal(t, []string{"unknown status lost", "negative price"}, problems[4])
}

package model

import "time"

// Snapshot is one full dashboard payload. Published snapshots are never mutated;
// changes produce a new snapshot.
type Snapshot struct {
	Orders    []Order
	Testers   []Tester
	Activity  []ActivityEvent
	Countries map[string]Country
	FetchedAt time.Time
	Sequence  uint64
}

// FindOrder returns the order with the given id.
func (s *Snapshot) FindOrder(id int64) (Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// FindTester returns the tester with the given id.
func (s *Snapshot) FindTester(id int64) (Tester, bool) {
	for _, t := range s.Testers {
		if t.ID == id {
			return t, true
		}
	}
	return Tester{}, false
}

// WithOrders returns a shallow copy carrying a replaced order list.
func (s *Snapshot) WithOrders(orders []Order) *Snapshot {
	next := *s
	next.Orders = orders
	return &next
}

package test

import (
	"context"
	"sync"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// FetcherStub returns snapshots produced by Fn, or a clone of Snapshot.
type FetcherStub struct {
	Fn       func(context.Context) (*model.Snapshot, error)
	Snapshot *model.Snapshot
	Err      error
}

// Fetch implements the dashboard fetcher contract.
func (s FetcherStub) Fetch(ctx context.Context) (*model.Snapshot, error) {
	if s.Fn != nil {
		return s.Fn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	clone := *s.Snapshot
	return &clone, nil
}

// StatusCall stores information about UpdateStatus invocations.
type StatusCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// StatusUpdaterStub records backend status updates. Errors are returned per order id.
type StatusUpdaterStub struct {
	mu     sync.Mutex
	Errors map[int64]error
	Calls  []StatusCall
}

// UpdateStatus records the call and returns the configured error.
func (s *StatusUpdaterStub) UpdateStatus(_ context.Context, orderID int64, status model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, StatusCall{OrderID: orderID, Status: status})
	return s.Errors[orderID]
}

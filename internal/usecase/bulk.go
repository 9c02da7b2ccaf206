package usecase

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// StatusUpdater changes an order status on the backend.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}

// SnapshotStore publishes locally modified snapshots.
type SnapshotStore interface {
	Snapshot() (*model.Snapshot, error)
	Apply(mutate func(*model.Snapshot) *model.Snapshot) (*model.Snapshot, error)
}

// BulkFailure is an order the backend refused to update.
type BulkFailure struct {
	ID     int64
	Reason string
}

// BulkResult reports the outcome of a bulk operation per order id.
type BulkResult struct {
	Updated []int64
	Failed  []BulkFailure
	Missing []int64
}

// BulkUseCase applies edits to many orders at once.
type BulkUseCase struct {
	updater StatusUpdater
	store   SnapshotStore
	workers int
	logger  *slog.Logger
	now     func() time.Time
}

// NewBulkUseCase constructs BulkUseCase running at most workers backend calls at once.
func NewBulkUseCase(updater StatusUpdater, store SnapshotStore, workers int, logger *slog.Logger) *BulkUseCase {
	if workers <= 0 {
		workers = 1
	}
	return &BulkUseCase{updater: updater, store: store, workers: workers, logger: logger, now: time.Now}
}

// split separates ids present in the snapshot from missing ones, dropping duplicates.
func split(s *model.Snapshot, ids []int64) (found, missing []int64) {
	known := make(map[int64]struct{}, len(s.Orders))
	for _, o := range s.Orders {
		known[o.ID] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := known[id]; ok {
			found = append(found, id)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

// UpdateStatus sends status to the backend for every found order and applies the
// successful changes locally. A failed order does not stop the others.
func (u *BulkUseCase) UpdateStatus(ctx context.Context, ids []int64, status model.OrderStatus) (*BulkResult, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	if len(ids) == 0 {
		return nil, domainErrors.ErrEmptySelection
	}
	s, err := u.store.Snapshot()
	if err != nil {
		return nil, err
	}
	found, missing := split(s, ids)
	result := &BulkResult{Missing: missing}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for _, id := range found {
		g.Go(func() error {
			err := u.updater.UpdateStatus(gctx, id, status)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				u.logger.Error("order status update failed",
					slog.Int64("order_id", id),
					slog.String("status", string(status)),
					slog.String("error", err.Error()),
				)
				result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: err.Error()})
				return nil
			}
			result.Updated = append(result.Updated, id)
			return nil
		})
	}
	_ = g.Wait()

	slices.Sort(result.Updated)
	slices.SortFunc(result.Failed, func(a, b BulkFailure) int { return cmp.Compare(a.ID, b.ID) })

	if len(result.Updated) > 0 {
		now := u.now()
		updated := toSet(result.Updated)
		if _, err := u.store.Apply(func(s *model.Snapshot) *model.Snapshot {
			return s.WithOrders(mapOrders(s.Orders, updated, func(o model.Order) model.Order {
				return withStatus(o, status, now)
			}))
		}); err != nil {
			return nil, err
		}
	}
	u.logger.Info("bulk status update",
		slog.String("status", string(status)),
		slog.Int("updated", len(result.Updated)),
		slog.Int("failed", len(result.Failed)),
		slog.Int("missing", len(result.Missing)),
	)
	return result, nil
}

// AssignTester sets the tester of every found order locally. A nil tester unassigns.
func (u *BulkUseCase) AssignTester(ctx context.Context, ids []int64, testerID *int64) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, domainErrors.ErrEmptySelection
	}
	s, err := u.store.Snapshot()
	if err != nil {
		return nil, err
	}
	if testerID != nil {
		if _, ok := s.FindTester(*testerID); !ok {
			return nil, domainErrors.ErrNotFound
		}
	}
	found, missing := split(s, ids)
	result := &BulkResult{Updated: found, Missing: missing}
	if len(found) == 0 {
		return result, nil
	}

	selected := toSet(found)
	_, err = u.store.Apply(func(s *model.Snapshot) *model.Snapshot {
		return s.WithOrders(mapOrders(s.Orders, selected, func(o model.Order) model.Order {
			if testerID == nil {
				o.TesterID = nil
			} else {
				id := *testerID
				o.TesterID = &id
			}
			return o
		}))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the found orders from the local snapshot.
func (u *BulkUseCase) Delete(ctx context.Context, ids []int64) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, domainErrors.ErrEmptySelection
	}
	s, err := u.store.Snapshot()
	if err != nil {
		return nil, err
	}
	found, missing := split(s, ids)
	result := &BulkResult{Updated: found, Missing: missing}
	if len(found) == 0 {
		return result, nil
	}

	selected := toSet(found)
	_, err = u.store.Apply(func(s *model.Snapshot) *model.Snapshot {
		kept := make([]model.Order, 0, len(s.Orders))
		for _, o := range s.Orders {
			if _, drop := selected[o.ID]; !drop {
				kept = append(kept, o)
			}
		}
		return s.WithOrders(kept)
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("orders removed locally", slog.Int("count", len(found)))
	return result, nil
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func mapOrders(orders []model.Order, selected map[int64]struct{}, fn func(model.Order) model.Order) []model.Order {
	out := make([]model.Order, len(orders))
	for i, o := range orders {
		if _, ok := selected[o.ID]; ok {
			o = fn(o)
		}
		out[i] = o
	}
	return out
}

// withStatus sets status and stamps the timestamp that status implies.
func withStatus(o model.Order, status model.OrderStatus, now time.Time) model.Order {
	o.Status = status
	stamp := now
	switch status {
	case model.OrderStatusPaid:
		o.PaidAt = &stamp
	case model.OrderStatusInProgress:
		o.StartedAt = &stamp
	case model.OrderStatusCompleted:
		o.CompletedAt = &stamp
	case model.OrderStatusCancelled:
		o.CancelledAt = &stamp
	}
	return o
}

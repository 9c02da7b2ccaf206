package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// SnapshotSource is the part of the dashboard loader the refresher drives.
type SnapshotSource interface {
	Refresh(ctx context.Context) (*model.Snapshot, error)
	Subscribe() (<-chan *model.Snapshot, func())
}

// Refresher reloads the dashboard snapshot on a fixed interval and logs every publish.
type Refresher struct {
	source   SnapshotSource
	interval time.Duration
	logger   *slog.Logger

	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
	failures int
}

// NewRefresher constructs a refresher. A non-positive interval disables periodic refreshes.
func NewRefresher(source SnapshotSource, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{source: source, interval: interval, logger: logger}
}

// Start launches the background loops. It is a no-op when already running.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	updates, unsubscribe := r.source.Subscribe()
	r.wg.Add(1)
	go r.watch(runCtx, updates, unsubscribe)

	if r.interval <= 0 {
		r.logger.Info("periodic refresh disabled")
		return
	}
	r.wg.Add(1)
	go r.tick(runCtx)
}

// Stop cancels the loops and waits for them to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Refresher) tick(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if _, err := r.source.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.failures++
		r.logger.Warn("scheduled refresh failed",
			slog.Int("consecutive_failures", r.failures),
			slog.String("error", err.Error()),
		)
		return
	}
	if r.failures > 0 {
		r.logger.Info("scheduled refresh recovered", slog.Int("after_failures", r.failures))
		r.failures = 0
	}
}

func (r *Refresher) watch(ctx context.Context, updates <-chan *model.Snapshot, unsubscribe func()) {
	defer r.wg.Done()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-updates:
			r.logger.Debug("snapshot published",
				slog.Uint64("sequence", s.Sequence),
				slog.Int("orders", len(s.Orders)),
			)
		}
	}
}

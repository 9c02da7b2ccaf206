// Package dashboard holds the in-memory dashboard snapshot. It coalesces refreshes,
// publishes snapshots copy-on-write and broadcasts every publish to subscribers.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/polkiloo/paymentqa-dashboard/internal/analytics"
	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

const (
	refreshKey       = "dashboard"
	subscriberBuffer = 1
)

// Fetcher loads a complete snapshot from the backend.
type Fetcher interface {
	Fetch(ctx context.Context) (*model.Snapshot, error)
}

// Status describes the state of the last synchronisation.
type Status struct {
	Loaded      bool
	Sequence    uint64
	FetchedAt   time.Time
	Stale       bool
	LastError   string
	LastErrorAt *time.Time
	Issues      []analytics.Issue
}

// Loader owns the current snapshot.
type Loader struct {
	fetcher Fetcher
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time

	group    singleflight.Group
	sequence atomic.Uint64

	mu          sync.RWMutex
	current     *model.Snapshot
	issues      []analytics.Issue
	lastErr     error
	lastErrAt   time.Time
	subscribers map[uint64]chan *model.Snapshot
	nextSub     uint64
}

// NewLoader creates a loader. Every fetch is bounded by timeout.
func NewLoader(fetcher Fetcher, timeout time.Duration, logger *slog.Logger) *Loader {
	return &Loader{
		fetcher:     fetcher,
		timeout:     timeout,
		logger:      logger,
		now:         time.Now,
		subscribers: make(map[uint64]chan *model.Snapshot),
	}
}

// Refresh fetches a new snapshot. Concurrent callers share one fetch. A caller whose
// context ends stops waiting but does not cancel the shared fetch.
func (l *Loader) Refresh(ctx context.Context) (*model.Snapshot, error) {
	ch := l.group.DoChan(refreshKey, func() (any, error) {
		return l.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.Snapshot), nil
	}
}

func (l *Loader) load(ctx context.Context) (*model.Snapshot, error) {
	seq := l.sequence.Add(1)
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	started := l.now()
	snapshot, err := l.fetcher.Fetch(ctx)
	if err != nil {
		l.recordFailure(err)
		return nil, err
	}

	snapshot.Sequence = seq
	snapshot.Activity = analytics.SortActivity(snapshot.Activity)
	issues := analytics.CheckConsistency(snapshot.Orders)
	for _, issue := range issues {
		l.logger.Warn("inconsistent order data",
			slog.Int64("order_id", issue.OrderID),
			slog.String("order", issue.OrderNumber),
			slog.String("problem", issue.Problem),
		)
	}

	l.mu.Lock()
	published := l.publishLocked(snapshot, issues, true)
	l.mu.Unlock()
	if published != snapshot {
		l.logger.Info("discarded stale snapshot", slog.Uint64("sequence", seq), slog.Uint64("current", published.Sequence))
		return published, nil
	}
	l.logger.Info("dashboard refreshed",
		slog.Uint64("sequence", seq),
		slog.Int("orders", len(snapshot.Orders)),
		slog.Duration("took", l.now().Sub(started)),
	)
	return snapshot, nil
}

func (l *Loader) recordFailure(err error) {
	l.mu.Lock()
	l.lastErr = err
	l.lastErrAt = l.now()
	l.mu.Unlock()
	l.logger.Error("dashboard refresh failed", slog.String("error", err.Error()))
}

// publishLocked installs next unless a newer snapshot is already current and returns
// the snapshot that is current afterwards. l.mu must be held.
func (l *Loader) publishLocked(next *model.Snapshot, issues []analytics.Issue, fetched bool) *model.Snapshot {
	if l.current != nil && next.Sequence < l.current.Sequence {
		return l.current
	}
	l.current = next
	l.issues = issues
	if fetched {
		l.lastErr = nil
		l.lastErrAt = time.Time{}
	}
	for _, ch := range l.subscribers {
		select {
		case ch <- next:
		default:
		}
	}
	return next
}

// Snapshot returns the current snapshot or ErrNotLoaded.
func (l *Loader) Snapshot() (*model.Snapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current == nil {
		return nil, domainErrors.ErrNotLoaded
	}
	return l.current, nil
}

// Apply publishes a snapshot derived from the current one. mutate must return a new
// snapshot and leave its argument untouched.
func (l *Loader) Apply(mutate func(*model.Snapshot) *model.Snapshot) (*model.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return nil, domainErrors.ErrNotLoaded
	}
	next := mutate(l.current)
	next.Sequence = l.sequence.Add(1)
	return l.publishLocked(next, analytics.CheckConsistency(next.Orders), false), nil
}

// Status reports the synchronisation state.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := Status{Issues: l.issues}
	if l.current != nil {
		st.Loaded = true
		st.Sequence = l.current.Sequence
		st.FetchedAt = l.current.FetchedAt
	}
	if l.lastErr != nil {
		at := l.lastErrAt
		st.LastError = l.lastErr.Error()
		st.LastErrorAt = &at
		st.Stale = st.Loaded
	}
	return st
}

// Subscribe returns a channel receiving each published snapshot. Slow subscribers miss
// updates instead of blocking publishers. cancel releases the subscription.
func (l *Loader) Subscribe() (<-chan *model.Snapshot, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSub
	l.nextSub++
	ch := make(chan *model.Snapshot, subscriberBuffer)
	l.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subscribers, id)
			l.mu.Unlock()
		})
	}
}

// WaitNewer blocks until a snapshot with a sequence above since is published or ctx ends.
func (l *Loader) WaitNewer(ctx context.Context, since uint64) (*model.Snapshot, error) {
	updates, cancel := l.Subscribe()
	defer cancel()

	if current, err := l.Snapshot(); err == nil && current.Sequence > since {
		return current, nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case s := <-updates:
			if s.Sequence > since {
				return s, nil
			}
		}
	}
}

package test

import (
	"context"
	"fmt"

	"go.uber.org/fx"
)

// LifecycleRecorder is an fx.Lifecycle that keeps hooks so tests can drive them directly.
type LifecycleRecorder struct {
	Hooks   []fx.Hook
	started int
}

func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// Start runs OnStart hooks in registration order and stops at the first failure.
// Only hooks that started successfully are stopped later.
func (l *LifecycleRecorder) Start(ctx context.Context) error {
	for i, h := range l.Hooks[l.started:] {
		if h.OnStart != nil {
			if err := h.OnStart(ctx); err != nil {
				return fmt.Errorf("start hook %d: %w", l.started+i, err)
			}
		}
		l.started++
	}
	return nil
}

// Stop runs OnStop hooks of started hooks in reverse order and returns the first error.
func (l *LifecycleRecorder) Stop(ctx context.Context) error {
	var first error
	for ; l.started > 0; l.started-- {
		h := l.Hooks[l.started-1]
		if h.OnStop == nil {
			continue
		}
		if err := h.OnStop(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ShutdownerStub signals Called once per Shutdown without blocking.
type ShutdownerStub struct {
	Called chan struct{}
}

func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called == nil {
		return nil
	}
	select {
	case s.Called <- struct{}{}:
	default:
	}
	return nil
}

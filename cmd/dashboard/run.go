package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/fx"
)

// run starts app, blocks until ctx is cancelled or app asks to shut down, then stops it.
// It exits the process with a non-zero code on start or stop failures.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard failed to start: %v\n", err)
		os.Exit(1)
	}

	code := 0
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case sig := <-app.Wait():
		code = sig.ExitCode
		slog.Info("shutdown requested", slog.Any("signal", sig.Signal), slog.Int("exit_code", code))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "dashboard failed to stop: %v\n", err)
		code = 1
	}
	if code != 0 {
		cancel()
		os.Exit(code)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/paymentqa-dashboard/internal/config"
	"github.com/polkiloo/paymentqa-dashboard/internal/dashboard"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/usecase"
	"github.com/polkiloo/paymentqa-dashboard/internal/worker"
)

// Module wires the facade, the HTTP server, the refresher and the lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewAdminFacade,
		newHTTPServer,
		newRefresher,
		func(uc *usecase.AuthUseCase) OperatorSeeder { return uc },
		func(l *dashboard.Loader) InitialLoader { return l },
	),
	fx.Invoke(registerLifecycle),
)

// OperatorSeeder creates the configured operator account.
type OperatorSeeder interface {
	EnsureOperator(ctx context.Context, login, password string) (bool, error)
}

// InitialLoader performs the first snapshot fetch.
type InitialLoader interface {
	Refresh(ctx context.Context) (*model.Snapshot, error)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type refresherParams struct {
	fx.In

	Loader *dashboard.Loader
	Config *config.Config
	Logger *slog.Logger
}

func newRefresher(p refresherParams) *worker.Refresher {
	return worker.NewRefresher(p.Loader, p.Config.RefreshInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Refresher  *worker.Refresher
	Seeder     OperatorSeeder
	Loader     InitialLoader
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := seedOperator(ctx, p); err != nil {
				return err
			}

			p.Logger.Info("starting dashboard", slog.String("addr", p.Server.Addr))
			go func() {
				if _, err := p.Loader.Refresh(context.Background()); err != nil {
					p.Logger.Warn("initial load failed, dashboard unavailable until next refresh", slog.String("error", err.Error()))
				}
			}()
			p.Refresher.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Refresher.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("dashboard stopped")
			return nil
		},
	})
}

func seedOperator(ctx context.Context, p lifecycleParams) error {
	if p.Config.OperatorLogin == "" {
		p.Logger.Warn("no operator configured, logins will only work for existing accounts")
		return nil
	}
	created, err := p.Seeder.EnsureOperator(ctx, p.Config.OperatorLogin, p.Config.OperatorPassword)
	if err != nil {
		return fmt.Errorf("ensure operator %q: %w", p.Config.OperatorLogin, err)
	}
	if created {
		p.Logger.Info("operator created", slog.String("login", p.Config.OperatorLogin))
	}
	return nil
}

package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/marketpanel/internal/config"
	"github.com/polkiloo/marketpanel/internal/metrics"
	"github.com/polkiloo/marketpanel/internal/session"
	"github.com/polkiloo/marketpanel/internal/worker"
)

// Module wires the panel facade, runtime components and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewPanelFacade,
		newHTTPServer,
		newHistoryAuditor,
	),
	fx.Invoke(registerLifecycle),
)

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

type workerParams struct {
	fx.In

	Facade  *PanelFacade
	Config  *config.Config
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func newHistoryAuditor(p workerParams) *worker.HistoryAuditor {
	return worker.NewHistoryAuditor(
		p.Facade,
		p.Config.AuditInterval,
		p.Config.AuditBatch,
		p.Config.AuditWorkers,
		p.Metrics,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Auditor    *worker.HistoryAuditor
	Session    *session.Store
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting marketpanel",
				slog.String("addr", p.Server.Addr),
				slog.String("api", p.Config.APIBaseURL),
			)

			if err := p.Session.Restore(ctx); err != nil {
				p.Logger.Warn("session restore failed", slog.String("error", err.Error()))
			}
			if err := p.Auditor.Start(context.WithoutCancel(ctx)); err != nil {
				return err
			}

			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Auditor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("marketpanel stopped")
			return nil
		},
	})
}

package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/config"
	"github.com/polkiloo/interviewprep/internal/storage/postgres"
	"github.com/polkiloo/interviewprep/internal/worker"
)

// Module wires the facade, the HTTP server and their lifecycle.
var Module = fx.Options(
	fx.Provide(
		NewPrepFacade,
		newHTTPServer,
		func(s *postgres.Storage) HealthChecker { return s },
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
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.Dispatcher
	Config     *config.Config
}

// registerLifecycle appends the dispatcher hook before the server hook. fx
// stops hooks in reverse, so in-flight requests finish before the
// notification queue is drained and no task can be submitted afterwards.
func registerLifecycle(p lifecycleParams) {
	grace := p.Config.ShutdownTimeout

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Dispatcher.Start(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := shutdownContext(ctx, grace)
			defer cancel()
			if err := p.Dispatcher.Stop(ctx); err != nil {
				p.Logger.Warn("notification queue not drained",
					slog.Int("pending", p.Dispatcher.Pending()),
					slog.String("error", err.Error()))
			}
			p.Logger.Info("interviewprep stopped")
			return nil
		},
	})

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting interviewprep", slog.String("addr", p.Server.Addr))
			go serve(p.Server, p.Shutdowner, p.Logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := shutdownContext(ctx, grace)
			defer cancel()
			if err := p.Server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	})
}

func serve(server *http.Server, shutdowner fx.Shutdowner, logger *slog.Logger) {
	err := server.ListenAndServe()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}
	logger.Error("http server terminated", slog.String("error", err.Error()))
	if err := shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
		logger.Error("request shutdown", slog.String("error", err.Error()))
	}
}

// shutdownContext bounds ctx by grace unless the caller already set a deadline.
func shutdownContext(ctx context.Context, grace time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || grace <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, grace)
}

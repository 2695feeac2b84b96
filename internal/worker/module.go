package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/config"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// Module provides the notification dispatcher both as itself and as the use case port.
var Module = fx.Provide(
	newDispatcher,
	func(d *Dispatcher) usecase.TaskDispatcher { return d },
)

type dispatcherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Config.DispatchWorkers, p.Config.DispatchQueueSize, p.Config.DispatchTaskTimeout, p.Logger)
}

package objectstore

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/config"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// Module exposes resume storage to fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (usecase.ObjectStore, error) {
	return NewSupabaseStore(p.Config.StorageURL, p.Config.StorageServiceKey, p.Config.StorageBucket, p.Logger)
}

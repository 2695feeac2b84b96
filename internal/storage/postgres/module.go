package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/config"
	"github.com/polkiloo/interviewprep/internal/domain/repository"
)

var _ repository.Factory = (*Storage)(nil)

// Module exposes the PostgreSQL storage as a repository factory and provides
// each repository from it.
var Module = fx.Options(
	fx.Provide(
		newStorage,
		func(s *Storage) repository.Factory { return s },
	),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.RoleRepository { return f.Roles() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.IntakeRepository { return f.Intakes() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

// registerLifecycle refuses to start against an unreachable database and
// closes the pool on stop.
func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := storage.HealthCheck(ctx); err != nil {
				return fmt.Errorf("database unreachable: %w", err)
			}
			storage.Logger().Info("database ready")
			return nil
		},
		OnStop: func(context.Context) error {
			storage.Close()
			storage.Logger().Info("database pool closed")
			return nil
		},
	})
}

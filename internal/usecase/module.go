package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCatalog,
	NewAuthUseCase,
	NewCheckoutUseCase,
	NewOrderUseCase,
	NewIntakeUseCase,
	NewNotificationUseCase,
	NewConsoleUseCase,
)

func newCatalog(cfg *config.Config) (*Catalog, error) {
	return LoadCatalog(cfg.CatalogFile)
}

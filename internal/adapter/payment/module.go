package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/config"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// Module exposes the payment provider implementation to fx graph.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newProvider(p providerParams) (usecase.PaymentProvider, error) {
	return NewStripeClient(p.Config.StripeAPIURL, p.Config.StripeSecretKey, p.Logger)
}

package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/config"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// Module exposes the mailer to fx graph. Without an API key messages are only logged.
var Module = fx.Provide(newMailer)

type mailerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newMailer(p mailerParams) (usecase.Mailer, error) {
	if p.Config.MailerAPIKey == "" {
		p.Logger.Warn("MAILER_API_KEY not set, notifications will only be logged")
		return NewLogMailer(p.Logger), nil
	}
	return NewMandrillClient(
		p.Config.MailerAPIURL,
		p.Config.MailerAPIKey,
		Sender{Email: p.Config.MailerFromEmail, Name: p.Config.MailerFromName},
		p.Config.MailerRatePerSecond,
		p.Logger,
	)
}

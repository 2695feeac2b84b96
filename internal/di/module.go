package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/interviewprep/internal/adapter/mailer"
	"github.com/polkiloo/interviewprep/internal/adapter/objectstore"
	"github.com/polkiloo/interviewprep/internal/adapter/payment"
	"github.com/polkiloo/interviewprep/internal/app"
	"github.com/polkiloo/interviewprep/internal/config"
	"github.com/polkiloo/interviewprep/internal/logger"
	"github.com/polkiloo/interviewprep/internal/pkg/auth"
	"github.com/polkiloo/interviewprep/internal/server/http/handlers"
	"github.com/polkiloo/interviewprep/internal/server/http/router"
	"github.com/polkiloo/interviewprep/internal/storage/postgres"
	"github.com/polkiloo/interviewprep/internal/usecase"
	"github.com/polkiloo/interviewprep/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		mailer.Module,
		objectstore.Module,
		worker.Module,
		usecase.Module,
		fx.Provide(func(f *app.PrepFacade) handlers.PrepFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

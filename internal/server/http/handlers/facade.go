package handlers

import (
	"context"

	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/server/http/middleware"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// StorefrontFacade covers the public purchase and intake flow.
type StorefrontFacade interface {
	Offerings() []model.Offering
	Checkout(ctx context.Context, offeringID, token string) (string, error)
	LookupOrder(ctx context.Context, reference string) (*model.Order, error)
	SubmitIntake(ctx context.Context, sub usecase.IntakeSubmission) (*model.Intake, error)
}

// AuthFacade describes account capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
	SetupAdmin(ctx context.Context) (string, string, error)
}

// ConsoleFacade backs the operator review console.
type ConsoleFacade interface {
	Intakes(ctx context.Context) ([]model.IntakeWithOrder, error)
	Intake(ctx context.Context, id string) (*usecase.IntakeDetail, error)
	EditIntake(ctx context.Context, id string, update model.IntakeUpdate) (*model.Intake, error)
	DeleteIntake(ctx context.Context, id string, confirmed bool) error
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// PrepFacade aggregates the full set of operations used across handlers.
type PrepFacade interface {
	StorefrontFacade
	AuthFacade
	ConsoleFacade
	HealthFacade
	middleware.AdminAuthorizer
}

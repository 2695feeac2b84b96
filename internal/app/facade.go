package app

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// HealthChecker reports backing store availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PrepFacade exposes the storefront and review console to the HTTP layer.
type PrepFacade struct {
	catalog  *usecase.Catalog
	auth     *usecase.AuthUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	intakes  *usecase.IntakeUseCase
	console  *usecase.ConsoleUseCase
	health   HealthChecker
}

func NewPrepFacade(
	catalog *usecase.Catalog,
	auth *usecase.AuthUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	intakes *usecase.IntakeUseCase,
	console *usecase.ConsoleUseCase,
	health HealthChecker,
) *PrepFacade {
	return &PrepFacade{
		catalog:  catalog,
		auth:     auth,
		checkout: checkout,
		orders:   orders,
		intakes:  intakes,
		console:  console,
		health:   health,
	}
}

func (f *PrepFacade) Offerings() []model.Offering {
	return f.catalog.List()
}

func (f *PrepFacade) Checkout(ctx context.Context, offeringID, token string) (string, error) {
	_, redirectURL, err := f.checkout.Checkout(ctx, offeringID, token)
	return redirectURL, err
}

// LookupOrder resolves the session and queues the confirmation of a pending order.
func (f *PrepFacade) LookupOrder(ctx context.Context, reference string) (*model.Order, error) {
	order, err := f.orders.ResolveSession(ctx, reference)
	if err != nil {
		return nil, err
	}
	f.orders.ConfirmAsync(order)
	return order, nil
}

func (f *PrepFacade) SubmitIntake(ctx context.Context, sub usecase.IntakeSubmission) (*model.Intake, error) {
	return f.intakes.Submit(ctx, sub)
}

func (f *PrepFacade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *PrepFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

// AdminLogin authenticates an operator; accounts without the admin role are forbidden.
func (f *PrepFacade) AdminLogin(ctx context.Context, email, password string) (string, error) {
	usr, token, err := f.auth.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	ok, err := f.auth.IsAdmin(ctx, usr.ID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domainErrors.ErrForbidden
	}
	return token, nil
}

// SetupAdmin provisions the admin account and returns its password once.
func (f *PrepFacade) SetupAdmin(ctx context.Context) (string, string, error) {
	usr, password, err := f.auth.BootstrapAdmin(ctx)
	if err != nil {
		return "", "", err
	}
	return usr.Email, password, nil
}

// Authorize resolves an admin token to its user id.
func (f *PrepFacade) Authorize(ctx context.Context, token string) (string, error) {
	id, err := f.auth.ParseToken(token)
	if err != nil {
		return "", domainErrors.ErrUnauthorized
	}
	ok, err := f.auth.IsAdmin(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domainErrors.ErrForbidden
	}
	return id, nil
}

func (f *PrepFacade) Intakes(ctx context.Context) ([]model.IntakeWithOrder, error) {
	return f.console.List(ctx)
}

func (f *PrepFacade) Intake(ctx context.Context, id string) (*usecase.IntakeDetail, error) {
	return f.console.Detail(ctx, id)
}

func (f *PrepFacade) EditIntake(ctx context.Context, id string, update model.IntakeUpdate) (*model.Intake, error) {
	return f.console.Edit(ctx, id, update)
}

func (f *PrepFacade) DeleteIntake(ctx context.Context, id string, confirmed bool) error {
	return f.console.Delete(ctx, id, confirmed)
}

func (f *PrepFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return errors.New("health checker not configured")
	}
	return f.health.HealthCheck(ctx)
}

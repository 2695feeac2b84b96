// Package facadetest provides a controllable stand-in for the application
// facade consumed by the HTTP layer.
package facadetest

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/usecase"
)

// PrepFacadeStub provides controllable behaviour for HTTP handlers.
// Unset functions fall back to a successful default.
type PrepFacadeStub struct {
	OfferingsList  []model.Offering
	CheckoutFn     func(context.Context, string, string) (string, error)
	LookupFn       func(context.Context, string) (*model.Order, error)
	SubmitFn       func(context.Context, usecase.IntakeSubmission) (*model.Intake, error)
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	AdminLoginFn   func(context.Context, string, string) (string, error)
	SetupFn        func(context.Context) (string, string, error)
	AuthorizeFn    func(context.Context, string) (string, error)
	IntakesFn      func(context.Context) ([]model.IntakeWithOrder, error)
	IntakeFn       func(context.Context, string) (*usecase.IntakeDetail, error)
	EditFn         func(context.Context, string, model.IntakeUpdate) (*model.Intake, error)
	DeleteFn       func(context.Context, string, bool) error
	HealthErr      error

	mu          sync.Mutex
	Submissions []usecase.IntakeSubmission
	Tokens      []string
}

func (s *PrepFacadeStub) Offerings() []model.Offering {
	return s.OfferingsList
}

// Checkout records the caller token and returns a fixed hosted page.
func (s *PrepFacadeStub) Checkout(ctx context.Context, offeringID, token string) (string, error) {
	s.mu.Lock()
	s.Tokens = append(s.Tokens, token)
	s.mu.Unlock()
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, offeringID, token)
	}
	return "https://checkout.example/pay/" + offeringID, nil
}

func (s *PrepFacadeStub) LookupOrder(ctx context.Context, reference string) (*model.Order, error) {
	if s.LookupFn != nil {
		return s.LookupFn(ctx, reference)
	}
	return &model.Order{ID: "order-1", CheckoutSessionID: reference, Status: model.OrderStatusPending}, nil
}

// SubmitIntake records the normalised submission; resume content is drained
// so tests can inspect it after the request body is closed.
func (s *PrepFacadeStub) SubmitIntake(ctx context.Context, sub usecase.IntakeSubmission) (*model.Intake, error) {
	if sub.Resume != nil && sub.Resume.Content != nil {
		data, err := io.ReadAll(sub.Resume.Content)
		if err != nil {
			return nil, err
		}
		resume := *sub.Resume
		resume.Content = bytes.NewReader(data)
		sub.Resume = &resume
	}
	s.mu.Lock()
	s.Submissions = append(s.Submissions, sub)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, sub)
	}
	return &model.Intake{ID: "intake-1", OrderID: sub.OrderID}, nil
}

// LastSubmission returns the most recent intake submission.
func (s *PrepFacadeStub) LastSubmission() (usecase.IntakeSubmission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Submissions) == 0 {
		return usecase.IntakeSubmission{}, false
	}
	return s.Submissions[len(s.Submissions)-1], true
}

func (s *PrepFacadeStub) Register(ctx context.Context, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password)
	}
	return "token", nil
}

func (s *PrepFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

func (s *PrepFacadeStub) AdminLogin(ctx context.Context, email, password string) (string, error) {
	if s.AdminLoginFn != nil {
		return s.AdminLoginFn(ctx, email, password)
	}
	return "admin-token", nil
}

func (s *PrepFacadeStub) SetupAdmin(ctx context.Context) (string, string, error) {
	if s.SetupFn != nil {
		return s.SetupFn(ctx)
	}
	return "admin@example.com", "generated", nil
}

func (s *PrepFacadeStub) Authorize(ctx context.Context, token string) (string, error) {
	if s.AuthorizeFn != nil {
		return s.AuthorizeFn(ctx, token)
	}
	return "admin-1", nil
}

func (s *PrepFacadeStub) Intakes(ctx context.Context) ([]model.IntakeWithOrder, error) {
	if s.IntakesFn != nil {
		return s.IntakesFn(ctx)
	}
	return nil, nil
}

func (s *PrepFacadeStub) Intake(ctx context.Context, id string) (*usecase.IntakeDetail, error) {
	if s.IntakeFn != nil {
		return s.IntakeFn(ctx, id)
	}
	return &usecase.IntakeDetail{IntakeWithOrder: model.IntakeWithOrder{Intake: model.Intake{ID: id}}}, nil
}

func (s *PrepFacadeStub) EditIntake(ctx context.Context, id string, update model.IntakeUpdate) (*model.Intake, error) {
	if s.EditFn != nil {
		return s.EditFn(ctx, id, update)
	}
	return &model.Intake{ID: id}, nil
}

func (s *PrepFacadeStub) DeleteIntake(ctx context.Context, id string, confirmed bool) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id, confirmed)
	}
	return nil
}

func (s *PrepFacadeStub) Health(ctx context.Context) error {
	return s.HealthErr
}

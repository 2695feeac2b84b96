package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/polkiloo/interviewprep/internal/config"
	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/domain/repository"
)

// CheckoutUseCase starts hosted payment flows and records pending orders.
type CheckoutUseCase struct {
	catalog    *Catalog
	payments   PaymentProvider
	orders     repository.OrderRepository
	identity   *AuthUseCase
	baseURL    string
	guestEmail string
	logger     *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	catalog *Catalog,
	payments PaymentProvider,
	orders repository.OrderRepository,
	identity *AuthUseCase,
	cfg *config.Config,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		catalog:    catalog,
		payments:   payments,
		orders:     orders,
		identity:   identity,
		baseURL:    cfg.PublicBaseURL,
		guestEmail: cfg.GuestEmail,
		logger:     logger,
	}
}

// Checkout creates a checkout session for offeringID and persists a pending order.
// An empty or unusable token checks out as guest.
func (u *CheckoutUseCase) Checkout(ctx context.Context, offeringID, token string) (*model.Order, string, error) {
	offering, err := u.catalog.Lookup(offeringID)
	if err != nil {
		return nil, "", err
	}

	var userID *string
	email := u.guestEmail
	if token != "" {
		usr, err := u.identity.Identify(ctx, token)
		switch {
		case err == nil:
			userID = &usr.ID
			email = usr.Email
		case errors.Is(err, domainErrors.ErrUnauthorized):
			u.logger.Debug("checkout token rejected, continuing as guest")
		default:
			u.logger.Warn("resolve checkout identity failed", slog.String("error", err.Error()))
		}
	}

	// Guests type their own email on the hosted page; the placeholder only
	// lands on the order row.
	req := model.CheckoutSessionRequest{
		Offering:   offering,
		SuccessURL: u.baseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  u.baseURL + "/payment-cancelled",
	}
	if userID != nil {
		req.CustomerEmail = email
		customerID, err := u.payments.FindCustomer(ctx, email)
		if err != nil {
			u.logger.Warn("payment customer lookup failed", slog.String("error", err.Error()))
		}
		req.CustomerID = customerID
	}

	session, err := u.payments.CreateCheckoutSession(ctx, req)
	if err != nil {
		u.logger.Error("create checkout session failed",
			slog.String("offering", offering.ID),
			slog.String("error", err.Error()),
		)
		return nil, "", fmt.Errorf("%w: %v", domainErrors.ErrPaymentProvider, err)
	}

	order := &model.Order{
		UserID:            userID,
		CustomerEmail:     email,
		OfferingID:        offering.ID,
		OfferingName:      offering.Name,
		Amount:            offering.Amount,
		Currency:          offering.Currency,
		CheckoutSessionID: session.ID,
		Status:            model.OrderStatusPending,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, "", domainErrors.Storage("save order", err)
	}

	u.logger.Info("checkout started",
		slog.String("order", order.ID),
		slog.String("offering", offering.ID),
		slog.Bool("guest", userID == nil),
	)
	return order, session.URL, nil
}

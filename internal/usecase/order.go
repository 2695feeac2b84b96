package usecase

import (
	"context"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
	"github.com/polkiloo/interviewprep/internal/domain/repository"
)

// OrderUseCase resolves orders returned from the payment provider.
type OrderUseCase struct {
	orders     repository.OrderRepository
	notifier   *NotificationUseCase
	dispatcher TaskDispatcher
	logger     *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, notifier *NotificationUseCase, dispatcher TaskDispatcher, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, notifier: notifier, dispatcher: dispatcher, logger: logger}
}

// ResolveSession finds the order created for a checkout session reference.
// A miss returns ErrNotFound; the order may not be written yet.
func (u *OrderUseCase) ResolveSession(ctx context.Context, reference string) (*model.Order, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domainErrors.Required("sessionReference")
	}

	order, err := u.orders.GetBySessionID(ctx, reference)
	if err != nil {
		return nil, domainErrors.Storage("lookup order", err)
	}
	return order, nil
}

// ConfirmAsync queues the order confirmation for a pending order. Completed
// orders are skipped so page reloads do not resend messages.
func (u *OrderUseCase) ConfirmAsync(order *model.Order) bool {
	if order.Status != model.OrderStatusPending {
		return false
	}
	orderID := order.ID
	queued := u.dispatcher.Submit("confirm-order", func(ctx context.Context) error {
		return u.notifier.ConfirmOrder(ctx, orderID)
	})
	if !queued {
		u.logger.Warn("order confirmation dropped", slog.String("order", orderID))
	}
	return queued
}

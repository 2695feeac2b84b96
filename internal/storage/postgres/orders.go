package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
)

const orderColumns = `id, user_id, customer_email, package_id, package_name, amount, currency, checkout_session_id, status, created_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	const query = `INSERT INTO orders (id, user_id, customer_email, package_id, package_name, amount, currency, checkout_session_id, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		order.ID, order.UserID, order.CustomerEmail, order.OfferingID, order.OfferingName,
		order.Amount, order.Currency, order.CheckoutSessionID, order.Status,
	).Scan(&order.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *orderRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE checkout_session_id=$1`
	return r.getOne(ctx, query, sessionID)
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg any) (*model.Order, error) {
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(orderDest(&o)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// MarkCompleted never moves an order back to pending, so repeating it is harmless.
func (r *orderRepository) MarkCompleted(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE orders SET status='completed' WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func orderDest(o *model.Order) []any {
	return []any{
		&o.ID, &o.UserID, &o.CustomerEmail, &o.OfferingID, &o.OfferingName,
		&o.Amount, &o.Currency, &o.CheckoutSessionID, &o.Status, &o.CreatedAt,
	}
}

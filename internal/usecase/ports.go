package usecase

import (
	"context"
	"io"
	"time"

	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// PaymentProvider creates hosted checkout sessions.
type PaymentProvider interface {
	// FindCustomer returns an existing customer id for email or "" when none exists.
	FindCustomer(ctx context.Context, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, req model.CheckoutSessionRequest) (*model.CheckoutSession, error)
}

// Mailer delivers transactional messages.
type Mailer interface {
	Send(ctx context.Context, msg model.Message) error
}

// ObjectStore keeps resume artifacts.
type ObjectStore interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

// TaskDispatcher runs best-effort background tasks. Submit reports whether the task was queued.
type TaskDispatcher interface {
	Submit(name string, task func(ctx context.Context) error) bool
}

package repository

import (
	"context"

	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// IntakeRepository describes persistence operations with intake records.
type IntakeRepository interface {
	Create(ctx context.Context, intake *model.Intake) error
	GetByID(ctx context.Context, id string) (*model.IntakeWithOrder, error)
	ListWithOrders(ctx context.Context) ([]model.IntakeWithOrder, error)
	Update(ctx context.Context, id string, update model.IntakeUpdate) (*model.Intake, error)
	Delete(ctx context.Context, id string) error
}

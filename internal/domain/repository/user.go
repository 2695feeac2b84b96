package repository

import (
	"context"

	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// CreateWithRole atomically creates user and grants role unless any user
	// already holds that role, in which case ErrAlreadyExists is returned.
	CreateWithRole(ctx context.Context, user *model.User, role string) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// RoleRepository answers role-grant queries.
type RoleRepository interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

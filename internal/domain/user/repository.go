package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsActive reports whether the user exists and has not been deactivated.
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateProfile(ctx context.Context, u User) (User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

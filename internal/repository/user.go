package repository

import (
	"context"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// UserRepository defines data access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Stream(ctx context.Context, fn func(*entity.User) error) error
}

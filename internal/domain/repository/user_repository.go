package repository

import (
	"context"
	"time"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return an apperror NotFound when nothing matches; a taken email is a
// Duplicate.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken finds the user holding hashedToken with an expiry after now.
	GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q query.Query) ([]entity.User, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
}

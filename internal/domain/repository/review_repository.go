package repository

import (
	"context"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// ReviewRepository stores reviews; a second review by the same user for the
// same bootcamp is a Duplicate.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q query.Query) ([]entity.Review, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
	DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error)
	// AverageRating is the mean rating of a bootcamp's reviews, 0 when it has none.
	AverageRating(ctx context.Context, bootcampID string) (float64, error)
}

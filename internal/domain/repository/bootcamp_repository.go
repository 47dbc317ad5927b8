package repository

import (
	"context"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q query.Query) ([]entity.Bootcamp, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
	// FindWithinRadius returns bootcamps whose location lies within miles of (lng, lat).
	FindWithinRadius(ctx context.Context, lng, lat, miles float64) ([]entity.Bootcamp, error)
	// SetAverageCost and SetAverageRating write a derived aggregate only.
	SetAverageCost(ctx context.Context, id string, v float64) error
	SetAverageRating(ctx context.Context, id string, v float64) error
}

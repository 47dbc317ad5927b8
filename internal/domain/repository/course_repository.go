package repository

import (
	"context"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q query.Query) ([]entity.Course, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
	DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error)
	// AverageTuition is the mean tuition fee of a bootcamp's courses, 0 when it has none.
	AverageTuition(ctx context.Context, bootcampID string) (float64, error)
}

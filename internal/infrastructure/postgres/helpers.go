package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

// NewStore wires every repository onto one pool. Close closes the pool.
func NewStore(pool *pgxpool.Pool) repository.Store {
	return repository.Store{
		Users:     NewUserRepository(pool),
		Bootcamps: NewBootcampRepository(pool),
		Courses:   NewCourseRepository(pool),
		Reviews:   NewReviewRepository(pool),
		Close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

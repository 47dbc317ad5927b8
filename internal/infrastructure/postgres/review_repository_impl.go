package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

var reviewColumns = []string{
	"id", "bootcamp_id", "user_id", "title", "text", "rating", "created_at", "updated_at",
}

type ReviewRepository struct {
	t *table[entity.Review]
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{t: &table[entity.Review]{
		pool:    pool,
		name:    "reviews",
		entity:  "Review",
		columns: reviewColumns,
		schema:  entity.ReviewSchema,
		scan:    scanReview,
		duplicate: func(*entity.Review) error {
			return apperror.Duplicate("User has already submitted a review for this bootcamp")
		},
	}}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	r := &entity.Review{}
	if err := row.Scan(&r.ID, &r.Bootcamp, &r.User, &r.Title, &r.Text, &r.Rating, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return r, nil
}

func reviewValues(r *entity.Review) map[string]any {
	return map[string]any{
		"bootcamp_id": r.Bootcamp,
		"user_id":     r.User,
		"title":       r.Title,
		"text":        r.Text,
		"rating":      r.Rating,
		"updated_at":  r.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	stamp(&rv.CreatedAt, &rv.UpdatedAt)
	vals := reviewValues(rv)
	vals["id"] = rv.ID
	vals["created_at"] = rv.CreatedAt
	return r.t.insert(ctx, vals, rv)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.t.get(ctx, id)
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	stamp(&rv.CreatedAt, &rv.UpdatedAt)
	return r.t.update(ctx, rv.ID, reviewValues(rv), rv)
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *ReviewRepository) Find(ctx context.Context, q query.Query) ([]entity.Review, error) {
	return r.t.find(ctx, q)
}

func (r *ReviewRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	return r.t.count(ctx, f)
}

func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	return r.t.deleteWhere(ctx, sq.Eq{"bootcamp_id": bootcampID})
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (float64, error) {
	return r.t.avg(ctx, "rating", sq.Eq{"bootcamp_id": bootcampID})
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

var courseColumns = []string{
	"id", "bootcamp_id", "user_id", "title", "description", "weeks",
	"tuition_fee", "minimum_skill", "scholarship_available", "created_at", "updated_at",
}

type CourseRepository struct {
	t *table[entity.Course]
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{t: &table[entity.Course]{
		pool:    pool,
		name:    "courses",
		entity:  "Course",
		columns: courseColumns,
		schema:  entity.CourseSchema,
		scan:    scanCourse,
	}}
}

func scanCourse(row pgx.Row) (*entity.Course, error) {
	c := &entity.Course{}
	if err := row.Scan(&c.ID, &c.Bootcamp, &c.User, &c.Title, &c.Description, &c.Weeks,
		&c.TuitionFee, &c.MinimumSkill, &c.ScholarshipAvailable, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func courseValues(c *entity.Course) map[string]any {
	return map[string]any{
		"bootcamp_id":           c.Bootcamp,
		"user_id":               c.User,
		"title":                 c.Title,
		"description":           c.Description,
		"weeks":                 c.Weeks,
		"tuition_fee":           c.TuitionFee,
		"minimum_skill":         c.MinimumSkill,
		"scholarship_available": c.ScholarshipAvailable,
		"updated_at":            c.UpdatedAt,
	}
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	vals := courseValues(c)
	vals["id"] = c.ID
	vals["created_at"] = c.CreatedAt
	return r.t.insert(ctx, vals, c)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	return r.t.get(ctx, id)
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return r.t.update(ctx, c.ID, courseValues(c), c)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *CourseRepository) Find(ctx context.Context, q query.Query) ([]entity.Course, error) {
	return r.t.find(ctx, q)
}

func (r *CourseRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	return r.t.count(ctx, f)
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	return r.t.deleteWhere(ctx, sq.Eq{"bootcamp_id": bootcampID})
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (float64, error) {
	return r.t.avg(ctx, "tuition_fee", sq.Eq{"bootcamp_id": bootcampID})
}

var _ repository.CourseRepository = (*CourseRepository)(nil)

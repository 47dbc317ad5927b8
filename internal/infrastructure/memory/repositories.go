package memory

import (
	"context"
	"strings"
	"time"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

// NewStore builds an empty in-memory store.
func NewStore() repository.Store {
	return repository.Store{
		Users:     NewUserRepository(),
		Bootcamps: NewBootcampRepository(),
		Courses:   NewCourseRepository(),
		Reviews:   NewReviewRepository(),
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// ---- users

type UserRepository struct{ c *collection[entity.User] }

func NewUserRepository() *UserRepository {
	return &UserRepository{c: newCollection("User", entity.UserSchema,
		func(u *entity.User) string { return u.ID },
		uniqueIndex[entity.User]{
			key: func(u *entity.User) string { return strings.ToLower(u.Email) },
			duplicate: func(u *entity.User) error {
				return apperror.Duplicate("The value '%s' is not unique", u.Email)
			},
		},
	)}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	stamp(&u.CreatedAt, &u.UpdatedAt)
	return r.c.insert(*u)
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.c.get(id)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	items, err := r.c.find(query.Query{Filter: query.Eq("email", strings.ToLower(email)), Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NotFound("User not found with email of %s", email)
	}
	return &items[0], nil
}

func (r *UserRepository) GetByResetToken(_ context.Context, hashedToken string, now time.Time) (*entity.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, id := range r.c.order {
		u := r.c.items[id]
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == hashedToken &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("reset token not found")
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	stamp(&u.CreatedAt, &u.UpdatedAt)
	return r.c.replace(*u)
}

func (r *UserRepository) Delete(_ context.Context, id string) error { return r.c.remove(id) }

func (r *UserRepository) Find(_ context.Context, q query.Query) ([]entity.User, error) {
	return r.c.find(q)
}

func (r *UserRepository) Count(_ context.Context, f query.Filter) (int64, error) {
	return r.c.count(f)
}

// ---- bootcamps

type BootcampRepository struct{ c *collection[entity.Bootcamp] }

func NewBootcampRepository() *BootcampRepository {
	return &BootcampRepository{c: newCollection("Bootcamp", entity.BootcampSchema,
		func(b *entity.Bootcamp) string { return b.ID },
		uniqueIndex[entity.Bootcamp]{
			key: func(b *entity.Bootcamp) string { return b.Name },
			duplicate: func(b *entity.Bootcamp) error {
				return apperror.Duplicate("The value '%s' is not unique", b.Name)
			},
		},
	)}
}

func (r *BootcampRepository) Create(_ context.Context, b *entity.Bootcamp) error {
	stamp(&b.CreatedAt, &b.UpdatedAt)
	return r.c.insert(*b)
}

func (r *BootcampRepository) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	return r.c.get(id)
}

func (r *BootcampRepository) Update(_ context.Context, b *entity.Bootcamp) error {
	stamp(&b.CreatedAt, &b.UpdatedAt)
	return r.c.replace(*b)
}

func (r *BootcampRepository) Delete(_ context.Context, id string) error { return r.c.remove(id) }

func (r *BootcampRepository) Find(_ context.Context, q query.Query) ([]entity.Bootcamp, error) {
	return r.c.find(q)
}

func (r *BootcampRepository) Count(_ context.Context, f query.Filter) (int64, error) {
	return r.c.count(f)
}

func (r *BootcampRepository) FindWithinRadius(_ context.Context, lng, lat, miles float64) ([]entity.Bootcamp, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var out []entity.Bootcamp
	for _, id := range r.c.order {
		b := r.c.items[id]
		if b.Location == nil || len(b.Location.Coordinates) < 2 {
			continue
		}
		if entity.DistanceMiles(lng, lat, b.Location.Lng(), b.Location.Lat()) <= miles {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BootcampRepository) SetAverageCost(_ context.Context, id string, v float64) error {
	return r.c.modify(id, func(b *entity.Bootcamp) { b.AverageCost = v })
}

func (r *BootcampRepository) SetAverageRating(_ context.Context, id string, v float64) error {
	return r.c.modify(id, func(b *entity.Bootcamp) { b.AverageRating = v })
}

// ---- courses

type CourseRepository struct{ c *collection[entity.Course] }

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{c: newCollection("Course", entity.CourseSchema,
		func(c *entity.Course) string { return c.ID })}
}

func (r *CourseRepository) Create(_ context.Context, c *entity.Course) error {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return r.c.insert(*c)
}

func (r *CourseRepository) GetByID(_ context.Context, id string) (*entity.Course, error) {
	return r.c.get(id)
}

func (r *CourseRepository) Update(_ context.Context, c *entity.Course) error {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return r.c.replace(*c)
}

func (r *CourseRepository) Delete(_ context.Context, id string) error { return r.c.remove(id) }

func (r *CourseRepository) Find(_ context.Context, q query.Query) ([]entity.Course, error) {
	return r.c.find(q)
}

func (r *CourseRepository) Count(_ context.Context, f query.Filter) (int64, error) {
	return r.c.count(f)
}

func (r *CourseRepository) DeleteByBootcamp(_ context.Context, bootcampID string) (int64, error) {
	return r.c.removeWhere(query.Eq("bootcamp", bootcampID))
}

func (r *CourseRepository) AverageTuition(_ context.Context, bootcampID string) (float64, error) {
	items, err := r.c.find(query.Query{Filter: query.Eq("bootcamp", bootcampID)})
	if err != nil || len(items) == 0 {
		return 0, err
	}
	var sum float64
	for _, c := range items {
		sum += c.TuitionFee
	}
	return sum / float64(len(items)), nil
}

// ---- reviews

type ReviewRepository struct{ c *collection[entity.Review] }

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{c: newCollection("Review", entity.ReviewSchema,
		func(r *entity.Review) string { return r.ID },
		uniqueIndex[entity.Review]{
			key: func(r *entity.Review) string { return r.Bootcamp + "/" + r.User },
			duplicate: func(*entity.Review) error {
				return apperror.Duplicate("User has already submitted a review for this bootcamp")
			},
		},
	)}
}

func (r *ReviewRepository) Create(_ context.Context, rv *entity.Review) error {
	stamp(&rv.CreatedAt, &rv.UpdatedAt)
	return r.c.insert(*rv)
}

func (r *ReviewRepository) GetByID(_ context.Context, id string) (*entity.Review, error) {
	return r.c.get(id)
}

func (r *ReviewRepository) Update(_ context.Context, rv *entity.Review) error {
	stamp(&rv.CreatedAt, &rv.UpdatedAt)
	return r.c.replace(*rv)
}

func (r *ReviewRepository) Delete(_ context.Context, id string) error { return r.c.remove(id) }

func (r *ReviewRepository) Find(_ context.Context, q query.Query) ([]entity.Review, error) {
	return r.c.find(q)
}

func (r *ReviewRepository) Count(_ context.Context, f query.Filter) (int64, error) {
	return r.c.count(f)
}

func (r *ReviewRepository) DeleteByBootcamp(_ context.Context, bootcampID string) (int64, error) {
	return r.c.removeWhere(query.Eq("bootcamp", bootcampID))
}

func (r *ReviewRepository) AverageRating(_ context.Context, bootcampID string) (float64, error) {
	items, err := r.c.find(query.Query{Filter: query.Eq("bootcamp", bootcampID)})
	if err != nil || len(items) == 0 {
		return 0, err
	}
	var sum float64
	for _, rv := range items {
		sum += float64(rv.Rating)
	}
	return sum / float64(len(items)), nil
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.BootcampRepository = (*BootcampRepository)(nil)
	_ repository.CourseRepository   = (*CourseRepository)(nil)
	_ repository.ReviewRepository   = (*ReviewRepository)(nil)
)

package mongodb

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

type UserRepository struct{ c *collection[entity.User] }

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{c: &collection[entity.User]{
		c:      db.Collection(usersCollection),
		entity: "User",
		schema: entity.UserSchema,
		duplicate: func(u *entity.User) error {
			return apperror.Duplicate("The value '%s' is not unique", u.Email)
		},
	}}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	stamp(&u.CreatedAt, &u.UpdatedAt)
	u.Email = strings.ToLower(u.Email)
	return r.c.insert(ctx, u)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.c.get(ctx, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.c.getBy(ctx, bson.M{"email": strings.ToLower(email)}, func() error {
		return apperror.NotFound("User not found with email of %s", email)
	})
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*entity.User, error) {
	return r.c.getBy(ctx, bson.M{
		"resetPasswordToken":  hashedToken,
		"resetPasswordExpire": bson.M{"$gt": now},
	}, func() error { return apperror.NotFound("reset token not found") })
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	stamp(&u.CreatedAt, &u.UpdatedAt)
	u.Email = strings.ToLower(u.Email)
	return r.c.replace(ctx, u.ID, u)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

func (r *UserRepository) Find(ctx context.Context, q query.Query) ([]entity.User, error) {
	return r.c.find(ctx, q)
}

func (r *UserRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	return r.c.count(ctx, f)
}

type BootcampRepository struct{ c *collection[entity.Bootcamp] }

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{c: &collection[entity.Bootcamp]{
		c:      db.Collection(bootcampsCollection),
		entity: "Bootcamp",
		schema: entity.BootcampSchema,
		duplicate: func(b *entity.Bootcamp) error {
			return apperror.Duplicate("The value '%s' is not unique", b.Name)
		},
	}}
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	stamp(&b.CreatedAt, &b.UpdatedAt)
	return r.c.insert(ctx, b)
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return r.c.get(ctx, id)
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	stamp(&b.CreatedAt, &b.UpdatedAt)
	return r.c.replace(ctx, b.ID, b)
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	return r.c.remove(ctx, id)
}

func (r *BootcampRepository) Find(ctx context.Context, q query.Query) ([]entity.Bootcamp, error) {
	return r.c.find(ctx, q)
}

func (r *BootcampRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	return r.c.count(ctx, f)
}

// radiusFilter selects bootcamps inside a spherical cap; the radius is in
// radians, distance over the earth radius.
func radiusFilter(lng, lat, miles float64) bson.M {
	return bson.M{"location": bson.M{"$geoWithin": bson.M{
		"$centerSphere": bson.A{bson.A{lng, lat}, miles / entity.EarthRadiusMiles},
	}}}
}

func (r *BootcampRepository) FindWithinRadius(ctx context.Context, lng, lat, miles float64) ([]entity.Bootcamp, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.c.findRaw(ctx, radiusFilter(lng, lat, miles), opts)
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id string, v float64) error {
	return r.c.set(ctx, id, bson.M{"averageCost": v})
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, v float64) error {
	return r.c.set(ctx, id, bson.M{"averageRating": v})
}

type CourseRepository struct{ c *collection[entity.Course] }

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{c: &collection[entity.Course]{
		c:      db.Collection(coursesCollection),
		entity: "Course",
		schema: entity.CourseSchema,
	}}
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return r.c.insert(ctx, c)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	return r.c.get(ctx, id)
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	stamp(&c.CreatedAt, &c.UpdatedAt)
	return r.c.replace(ctx, c.ID, c)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

func (r *CourseRepository) Find(ctx context.Context, q query.Query) ([]entity.Course, error) {
	return r.c.find(ctx, q)
}

func (r *CourseRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	return r.c.count(ctx, f)
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	return r.c.removeWhere(ctx, bson.M{"bootcamp": bootcampID})
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (float64, error) {
	return r.c.avg(ctx, "tuitionFee", bson.M{"bootcamp": bootcampID})
}

type ReviewRepository struct{ c *collection[entity.Review] }

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{c: &collection[entity.Review]{
		c:      db.Collection(reviewsCollection),
		entity: "Review",
		schema: entity.ReviewSchema,
		duplicate: func(*entity.Review) error {
			return apperror.Duplicate("User has already submitted a review for this bootcamp")
		},
	}}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	stamp(&rv.CreatedAt, &rv.UpdatedAt)
	return r.c.insert(ctx, rv)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.c.get(ctx, id)
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	stamp(&rv.CreatedAt, &rv.UpdatedAt)
	return r.c.replace(ctx, rv.ID, rv)
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

func (r *ReviewRepository) Find(ctx context.Context, q query.Query) ([]entity.Review, error) {
	return r.c.find(ctx, q)
}

func (r *ReviewRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	return r.c.count(ctx, f)
}

func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	return r.c.removeWhere(ctx, bson.M{"bootcamp": bootcampID})
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (float64, error) {
	return r.c.avg(ctx, "rating", bson.M{"bootcamp": bootcampID})
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.BootcampRepository = (*BootcampRepository)(nil)
	_ repository.CourseRepository   = (*CourseRepository)(nil)
	_ repository.ReviewRepository   = (*ReviewRepository)(nil)
)

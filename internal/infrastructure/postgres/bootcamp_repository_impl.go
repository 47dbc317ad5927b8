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

var bootcampColumns = []string{
	"id", "user_id", "name", "slug", "description", "website", "phone", "email",
	"location_type", "longitude", "latitude", "formatted_address", "street", "city", "state", "zipcode", "country",
	"careers", "average_rating", "average_cost", "photo",
	"housing", "job_assistance", "job_guarantee", "accept_gi", "created_at", "updated_at",
}

// great-circle distance in miles from ($lat, $lng) to a row's coordinates
const haversineSQL = `2 * ? * asin(sqrt(power(sin(radians(latitude - ?) / 2), 2) + ` +
	`cos(radians(?)) * cos(radians(latitude)) * power(sin(radians(longitude - ?) / 2), 2))) <= ?`

type BootcampRepository struct {
	t *table[entity.Bootcamp]
}

func NewBootcampRepository(pool *pgxpool.Pool) *BootcampRepository {
	return &BootcampRepository{t: &table[entity.Bootcamp]{
		pool:    pool,
		name:    "bootcamps",
		entity:  "Bootcamp",
		columns: bootcampColumns,
		schema:  entity.BootcampSchema,
		scan:    scanBootcamp,
		duplicate: func(b *entity.Bootcamp) error {
			return apperror.Duplicate("The value '%s' is not unique", b.Name)
		},
	}}
}

func scanBootcamp(row pgx.Row) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	var website, phone, email *string
	var locType, formatted, street, city, state, zipcode, country *string
	var lng, lat *float64
	if err := row.Scan(&b.ID, &b.User, &b.Name, &b.Slug, &b.Description, &website, &phone, &email,
		&locType, &lng, &lat, &formatted, &street, &city, &state, &zipcode, &country,
		&b.Careers, &b.AverageRating, &b.AverageCost, &b.Photo,
		&b.Housing, &b.JobAssistance, &b.JobGuarantee, &b.AcceptGi, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Website, b.Phone, b.Email = deref(website), deref(phone), deref(email)
	if lng != nil && lat != nil {
		b.Location = entity.NewPoint(*lng, *lat)
		b.Location.FormattedAddress = deref(formatted)
		b.Location.Street = deref(street)
		b.Location.City = deref(city)
		b.Location.State = deref(state)
		b.Location.Zipcode = deref(zipcode)
		b.Location.Country = deref(country)
	}
	return b, nil
}

func bootcampValues(b *entity.Bootcamp) map[string]any {
	careers := b.Careers
	if careers == nil {
		careers = []string{}
	}
	v := map[string]any{
		"user_id":        b.User,
		"name":           b.Name,
		"slug":           b.Slug,
		"description":    b.Description,
		"website":        nullable(b.Website),
		"phone":          nullable(b.Phone),
		"email":          nullable(b.Email),
		"careers":        careers,
		"average_rating": b.AverageRating,
		"average_cost":   b.AverageCost,
		"photo":          b.Photo,
		"housing":        b.Housing,
		"job_assistance": b.JobAssistance,
		"job_guarantee":  b.JobGuarantee,
		"accept_gi":      b.AcceptGi,
		"updated_at":     b.UpdatedAt,
	}
	loc := b.Location
	if loc == nil || len(loc.Coordinates) < 2 {
		for _, col := range []string{"location_type", "longitude", "latitude", "formatted_address", "street", "city", "state", "zipcode", "country"} {
			v[col] = nil
		}
		return v
	}
	v["location_type"] = loc.Type
	v["longitude"] = loc.Lng()
	v["latitude"] = loc.Lat()
	v["formatted_address"] = nullable(loc.FormattedAddress)
	v["street"] = nullable(loc.Street)
	v["city"] = nullable(loc.City)
	v["state"] = nullable(loc.State)
	v["zipcode"] = nullable(loc.Zipcode)
	v["country"] = nullable(loc.Country)
	return v
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	stamp(&b.CreatedAt, &b.UpdatedAt)
	vals := bootcampValues(b)
	vals["id"] = b.ID
	vals["created_at"] = b.CreatedAt
	return r.t.insert(ctx, vals, b)
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return r.t.get(ctx, id)
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	stamp(&b.CreatedAt, &b.UpdatedAt)
	return r.t.update(ctx, b.ID, bootcampValues(b), b)
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *BootcampRepository) Find(ctx context.Context, q query.Query) ([]entity.Bootcamp, error) {
	return r.t.find(ctx, q)
}

func (r *BootcampRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	return r.t.count(ctx, f)
}

func (r *BootcampRepository) FindWithinRadius(ctx context.Context, lng, lat, miles float64) ([]entity.Bootcamp, error) {
	sqlStr, args, err := psql.Select(bootcampColumns...).From("bootcamps").
		Where(sq.NotEq{"latitude": nil}).
		Where(sq.Expr(haversineSQL, entity.EarthRadiusMiles, lat, lat, lng, miles)).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.t.queryRows(ctx, sqlStr, args...)
}

func (r *BootcampRepository) setColumn(ctx context.Context, id, col string, v float64) error {
	sqlStr, args, err := psql.Update("bootcamps").Set(col, v).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.t.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return handleSQLError(err, r.t.notFound(id), nil)
	}
	if tag.RowsAffected() == 0 {
		return r.t.notFound(id)()
	}
	return nil
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id string, v float64) error {
	return r.setColumn(ctx, id, "average_cost", v)
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, v float64) error {
	return r.setColumn(ctx, id, "average_rating", v)
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)

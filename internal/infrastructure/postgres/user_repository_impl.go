package postgres

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

var userColumns = []string{
	"id", "name", "email", "role", "password_hash",
	"reset_password_token", "reset_password_expire", "created_at", "updated_at",
}

type UserRepository struct {
	t *table[entity.User]
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{t: &table[entity.User]{
		pool:    pool,
		name:    "users",
		entity:  "User",
		columns: userColumns,
		schema:  entity.UserSchema,
		scan:    scanUser,
		duplicate: func(u *entity.User) error {
			return apperror.Duplicate("The value '%s' is not unique", u.Email)
		},
	}}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var (
		role  string
		token *string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Password,
		&token, &u.ResetPasswordExpire, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	u.ResetPasswordToken = deref(token)
	return u, nil
}

func userValues(u *entity.User) map[string]any {
	return map[string]any{
		"name":                  u.Name,
		"email":                 strings.ToLower(u.Email),
		"role":                  string(u.Role),
		"password_hash":         u.Password,
		"reset_password_token":  nullable(u.ResetPasswordToken),
		"reset_password_expire": u.ResetPasswordExpire,
		"updated_at":            u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	stamp(&u.CreatedAt, &u.UpdatedAt)
	vals := userValues(u)
	vals["id"] = u.ID
	vals["created_at"] = u.CreatedAt
	return r.t.insert(ctx, vals, u)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.t.get(ctx, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.t.getBy(ctx, sq.Expr("lower(email) = ?", strings.ToLower(email)), func() error {
		return apperror.NotFound("User not found with email of %s", email)
	})
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hashedToken string, now time.Time) (*entity.User, error) {
	return r.t.getBy(ctx, sq.And{
		sq.Eq{"reset_password_token": hashedToken},
		sq.Gt{"reset_password_expire": now},
	}, func() error { return apperror.NotFound("reset token not found") })
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	stamp(&u.CreatedAt, &u.UpdatedAt)
	return r.t.update(ctx, u.ID, userValues(u), u)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *UserRepository) Find(ctx context.Context, q query.Query) ([]entity.User, error) {
	return r.t.find(ctx, q)
}

func (r *UserRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	return r.t.count(ctx, f)
}

var _ repository.UserRepository = (*UserRepository)(nil)

package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/query"
)

// table holds the SQL plumbing shared by every repository: a column list in
// scan order, the entity schema and the entity specific error messages.
type table[T any] struct {
	pool      *pgxpool.Pool
	name      string
	entity    string
	columns   []string
	schema    query.Schema
	scan      func(row pgx.Row) (*T, error)
	duplicate func(*T) error
}

func (t *table[T]) notFound(id string) func() error {
	return func() error { return apperror.NotFound("%s not found with id of %s", t.entity, id) }
}

func (t *table[T]) dup(item *T) func() error {
	if t.duplicate == nil || item == nil {
		return nil
	}
	return func() error { return t.duplicate(item) }
}

func (t *table[T]) getBy(ctx context.Context, pred sq.Sqlizer, notFound func() error) (*T, error) {
	sqlStr, args, err := psql.Select(t.columns...).From(t.name).Where(pred).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}
	item, err := t.scan(t.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, handleSQLError(err, notFound, nil)
	}
	return item, nil
}

func (t *table[T]) get(ctx context.Context, id string) (*T, error) {
	return t.getBy(ctx, sq.Eq{"id": id}, t.notFound(id))
}

func (t *table[T]) selectQuery(q query.Query) sq.SelectBuilder {
	sb := psql.Select(t.columns...).From(t.name).
		Where(where(t.schema, q.Filter)).
		OrderBy(orderBy(t.schema, q.Sort)...)
	if q.Skip > 0 {
		sb = sb.Offset(uint64(q.Skip))
	}
	if q.Limit > 0 {
		sb = sb.Limit(uint64(q.Limit))
	}
	return sb
}

func (t *table[T]) find(ctx context.Context, q query.Query) ([]T, error) {
	sqlStr, args, err := t.selectQuery(q).ToSql()
	if err != nil {
		return nil, err
	}
	return t.queryRows(ctx, sqlStr, args...)
}

func (t *table[T]) queryRows(ctx context.Context, sqlStr string, args ...any) ([]T, error) {
	rows, err := t.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, handleSQLError(err, nil, nil)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, handleSQLError(err, nil, nil)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err, nil, nil)
	}
	return out, nil
}

func (t *table[T]) count(ctx context.Context, f query.Filter) (int64, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").From(t.name).Where(where(t.schema, f)).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := t.pool.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, handleSQLError(err, nil, nil)
	}
	return n, nil
}

func (t *table[T]) insert(ctx context.Context, values map[string]any, item *T) error {
	sqlStr, args, err := psql.Insert(t.name).SetMap(values).ToSql()
	if err != nil {
		return err
	}
	if _, err := t.pool.Exec(ctx, sqlStr, args...); err != nil {
		return handleSQLError(err, nil, t.dup(item))
	}
	return nil
}

func (t *table[T]) update(ctx context.Context, id string, values map[string]any, item *T) error {
	sqlStr, args, err := psql.Update(t.name).SetMap(values).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := t.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return handleSQLError(err, t.notFound(id), t.dup(item))
	}
	if tag.RowsAffected() == 0 {
		return t.notFound(id)()
	}
	return nil
}

func (t *table[T]) delete(ctx context.Context, id string) error {
	sqlStr, args, err := psql.Delete(t.name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := t.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return handleSQLError(err, t.notFound(id), nil)
	}
	if tag.RowsAffected() == 0 {
		return t.notFound(id)()
	}
	return nil
}

func (t *table[T]) deleteWhere(ctx context.Context, pred sq.Sqlizer) (int64, error) {
	sqlStr, args, err := psql.Delete(t.name).Where(pred).ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := t.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, handleSQLError(err, nil, nil)
	}
	return tag.RowsAffected(), nil
}

// avg returns the mean of column over rows matching pred, 0 for no rows.
func (t *table[T]) avg(ctx context.Context, column string, pred sq.Sqlizer) (float64, error) {
	sqlStr, args, err := psql.Select("COALESCE(AVG(" + column + "), 0)").From(t.name).Where(pred).ToSql()
	if err != nil {
		return 0, err
	}
	var v float64
	if err := t.pool.QueryRow(ctx, sqlStr, args...).Scan(&v); err != nil {
		return 0, handleSQLError(err, nil, nil)
	}
	return v, nil
}

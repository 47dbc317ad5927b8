package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
)

const (
	codeUniqueViolation = "23505"
	codeInvalidText     = "22P02"
	codeCheckViolation  = "23514"
)

// handleSQLError translates driver errors into application errors. notFound
// and duplicate build the entity specific messages.
func handleSQLError(err error, notFound func() error, duplicate func() error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if notFound != nil {
			return notFound()
		}
		return apperror.NotFound("resource not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if duplicate != nil {
				return duplicate()
			}
			return apperror.Duplicate("Duplicate field value entered")
		case codeInvalidText:
			return apperror.Validation("invalid input: " + pgErr.Message)
		case codeCheckViolation:
			return apperror.Validation("value violates constraint " + pgErr.ConstraintName)
		}
	}
	return apperror.Internal("database error", err)
}

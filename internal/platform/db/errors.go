package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hospital/hms/internal/platform/apperr"
)

// Postgres SQLSTATE codes surfaced as ConstraintError.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// Constraint maps a named table constraint onto the API field it guards.
type Constraint struct {
	Field   string
	Message string
}

// TranslateError converts integrity violations into *apperr.ConstraintError
// using the caller's constraint table; other errors pass through unchanged.
func TranslateError(err error, constraints map[string]Constraint) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation, codeNotNullViolation:
	default:
		return err
	}

	if c, ok := constraints[pgErr.ConstraintName]; ok {
		return &apperr.ConstraintError{Field: c.Field, Message: c.Message, Err: err}
	}
	field := pgErr.ColumnName
	msg := pgErr.Message
	if pgErr.Detail != "" {
		msg = pgErr.Detail
	}
	return &apperr.ConstraintError{Field: field, Message: msg, Err: err}
}

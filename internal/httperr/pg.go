package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgExclusionViolation  = "23P01"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reports whether err is an exclusion constraint
// violation, i.e. the store rejected overlapping ranges.
func IsExclusionConflict(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// FromStore translates constraint violations into the taxonomy and wraps
// everything else as internal.
func FromStore(code string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	switch pgCode(err) {
	case pgExclusionViolation:
		return &Error{Kind: KindConflict, Code: "time_conflict", Message: "The time range overlaps an existing one.", Err: err}
	case pgUniqueViolation:
		return &Error{Kind: KindConflict, Code: "duplicate", Message: "The record already exists.", Err: err}
	case pgForeignKeyViolation:
		return &Error{Kind: KindNotFound, Code: "reference_not_found", Message: "A referenced record does not exist.", Err: err}
	case pgCheckViolation:
		return &Error{Kind: KindValidation, Code: "constraint_violation", Message: "The record violates a data constraint.", Err: err}
	}

	return Internal(code, err)
}

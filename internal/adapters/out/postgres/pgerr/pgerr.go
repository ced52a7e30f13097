// Package pgerr maps PostgreSQL driver errors onto the errs package.
package pgerr

import (
	"errors"

	"lastmile/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation is the SQLSTATE reported when an insert hits a unique constraint.
const UniqueViolation = "23505"

// Translate turns a unique violation into errs.ObjectAlreadyExistsError for paramName/id.
// Other errors, and nil, are returned unchanged.
func Translate(err error, paramName string, id any) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == UniqueViolation {
		return errs.NewObjectAlreadyExistsErrorWithCause(paramName, id, pgErr)
	}

	return err
}

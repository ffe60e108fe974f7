package implementation

import (
	"errors"

	"photostudio-be/internal/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// translateError turns unique-constraint violations into conflicts and
// passes every other error through.
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.ConflictError{Resource: resource, Msg: "duplicate " + pgErr.ConstraintName, Err: err}
	}
	return err
}

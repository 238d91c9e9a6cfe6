package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate surfaces a store-level unique constraint violation. The
// unique indexes are the source of truth for duplicate detection; service
// pre-checks only exist to give a friendly error without racing inserts.
var ErrDuplicate = errors.New("duplicate record")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func translateError(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsDuplicateKey reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is what lookups surface for a missing row and what
// delete-style operations return when they matched nothing. Aliasing the
// gorm sentinel means First-based getters need no per-call translation.
var ErrNotFound = gorm.ErrRecordNotFound

// IsDuplicateKey reports whether err is a unique-constraint violation. The
// constraint in the store is the authoritative guard against concurrent
// inserts, so callers translate this into their "already exists" errors.
// gorm.ErrDuplicatedKey covers drivers with error translation (including the
// sqlite driver used in tests); the pgconn check catches raw postgres errors
// that bypass translation.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

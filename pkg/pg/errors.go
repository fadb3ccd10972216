package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrEmptyConnectionString = errors.New("pg.empty_connection_string")
	ErrInvalidConfig         = errors.New("pg.invalid_config")
	ErrConnect               = errors.New("pg.connect_failed")
	ErrMigrate               = errors.New("pg.migrate_failed")
	ErrUnhealthy             = errors.New("pg.unhealthy")
)

// IsNotFoundError reports whether err is pgx.ErrNoRows.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trayshop/storefront/pkg/kvstore"
)

// DB is the subset of *pgxpool.Pool used by Storage.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectValueSQL = `SELECT value FROM client_state WHERE key = $1`
	upsertValueSQL = `INSERT INTO client_state (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteValueSQL = `DELETE FROM client_state WHERE key = $1`
)

// Storage is a kvstore.Storage over the client_state table.
type Storage struct {
	db DB
}

var _ kvstore.Storage = (*Storage)(nil)

func NewStorage(db DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, kvstore.ErrEmptyKey
	}

	var value []byte
	if err := s.db.QueryRow(ctx, selectValueSQL, key).Scan(&value); err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.Exec(ctx, upsertValueSQL, key, value)
	return err
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	_, err := s.db.Exec(ctx, deleteValueSQL, key)
	return err
}

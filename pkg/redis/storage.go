package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/trayshop/storefront/pkg/kvstore"
)

// Storage is a kvstore.Storage backed by Redis string keys.
// Keys never expire: the token and the cart must survive restarts.
type Storage struct {
	db     redis.UniversalClient
	prefix string
}

var _ kvstore.Storage = (*Storage)(nil)

func NewStorage(client redis.UniversalClient, prefix string) *Storage {
	return &Storage{db: client, prefix: prefix}
}

// Get returns nil for missing keys (redis.Nil becomes nil).
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, kvstore.ErrEmptyKey
	}
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	return s.db.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	return s.db.Del(ctx, s.prefix+key).Err()
}

// Healthcheck pings the server.
func (s *Storage) Healthcheck(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrUnhealthy, err)
	}
	return nil
}

// Close terminates the Redis connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

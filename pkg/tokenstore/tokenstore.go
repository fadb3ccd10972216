// Package tokenstore persists the bearer token under a fixed storage key.
// The token is opaque; nothing here inspects or validates it.
package tokenstore

import (
	"context"
	"log/slog"

	"github.com/trayshop/storefront/pkg/kvstore"
	"github.com/trayshop/storefront/pkg/logger"
)

// Key is the storage key holding the token.
const Key = "token"

// Store is the single owner of the "token" key.
type Store struct {
	storage kvstore.Storage
	log     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(storage kvstore.Storage, opts ...Option) *Store {
	s := &Store{storage: storage, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("tokenstore"))
	return s
}

// Get returns the stored token. A storage failure is logged and reported as
// "no token" so callers fall back to unauthenticated behaviour.
func (s *Store) Get(ctx context.Context) (string, bool) {
	v, err := s.storage.Get(ctx, Key)
	if err != nil {
		s.log.WarnContext(ctx, "failed to read token", logger.Error(err))
		return "", false
	}
	if len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return s.storage.Set(ctx, Key, []byte(token))
}

func (s *Store) Clear(ctx context.Context) error {
	return s.storage.Delete(ctx, Key)
}

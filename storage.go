package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trayshop/storefront/pkg/kvstore"
	"github.com/trayshop/storefront/pkg/logger"
	"github.com/trayshop/storefront/pkg/mongo"
	"github.com/trayshop/storefront/pkg/pg"
	"github.com/trayshop/storefront/pkg/redis"
)

type backend struct {
	storage     kvstore.Storage
	close       func(context.Context) error
	healthcheck func(context.Context) error
}

func noop(context.Context) error { return nil }

// openStorage connects the backend selected by cfg.Storage.
func openStorage(ctx context.Context, cfg Config, log *slog.Logger) (backend, error) {
	log = log.With(slog.String("backend", string(cfg.Storage)))

	switch cfg.Storage {
	case StorageMemory:
		return backend{storage: kvstore.NewMemoryStorage(), close: noop, healthcheck: noop}, nil

	case StorageFile, "":
		fs, err := kvstore.NewFileStorage(cfg.StorageDir)
		if err != nil {
			return backend{}, errors.Join(ErrStorageOpen, err)
		}
		log.DebugContext(ctx, "file storage ready", slog.String("dir", fs.Dir()))
		return backend{storage: fs, close: noop, healthcheck: noop}, nil

	case StorageRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return backend{}, errors.Join(ErrStorageOpen, err)
		}
		s := redis.NewStorage(client, cfg.Redis.KeyPrefix)
		return backend{
			storage:     s,
			close:       func(context.Context) error { return s.Close() },
			healthcheck: s.Healthcheck,
		}, nil

	case StoragePostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return backend{}, errors.Join(ErrStorageOpen, err)
		}
		if err := pg.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
			pool.Close()
			return backend{}, errors.Join(ErrStorageOpen, err)
		}
		return backend{
			storage:     pg.NewStorage(pool),
			close:       func(context.Context) error { pool.Close(); return nil },
			healthcheck: pg.Healthcheck(pool),
		}, nil

	case StorageMongo:
		db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
		if err != nil {
			return backend{}, errors.Join(ErrStorageOpen, err)
		}
		s := mongo.NewStorage(db, cfg.Mongo.Collection)
		return backend{storage: s, close: s.Close, healthcheck: s.Healthcheck}, nil
	}

	log.ErrorContext(ctx, "unknown storage backend", logger.Error(ErrUnknownStorage))
	return backend{}, fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Storage)
}

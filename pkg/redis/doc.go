// Package redis connects to Redis and exposes it as a kvstore.Storage, so the
// client's token and cart can live in a shared Redis database (for example
// when the storefront client runs inside a kiosk fleet that must survive
// host restarts).
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := redis.NewStorage(client, cfg.KeyPrefix)
//
// Storage.Healthcheck pings the server and suits readiness probes.
//
// Errors are sentinel values joined with the underlying go-redis error via
// errors.Join, so errors.Is works on both.
package redis

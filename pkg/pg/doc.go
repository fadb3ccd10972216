// Package pg stores client state in PostgreSQL through pgx/v5.
//
// Connect opens a *pgxpool.Pool with retries, Migrate applies the embedded
// goose migrations (a single client_state key/value table), and Storage
// adapts the table to kvstore.Storage. Healthcheck returns a ping closure for
// readiness checks.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//	store := pg.NewStorage(pool)
package pg

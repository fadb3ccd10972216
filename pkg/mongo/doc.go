// Package mongo keeps client state in a MongoDB collection.
//
// New connects with retries. Storage maps each kvstore key to one document
// ({_id: key, value: <bytes>, updated_at}) written with an upsert; its
// Healthcheck pings the deployment.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := mongo.NewStorage(db, cfg.Collection)
package mongo

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/trayshop/storefront/pkg/kvstore"
)

// DefaultCollection holds one document per storage key.
const DefaultCollection = "client_state"

type stateDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Storage is a kvstore.Storage backed by a MongoDB collection.
type Storage struct {
	coll *mongo.Collection
}

var _ kvstore.Storage = (*Storage)(nil)

func NewStorage(db *mongo.Database, collection string) *Storage {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Storage{coll: db.Collection(collection)}
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, kvstore.ErrEmptyKey
	}

	var doc stateDocument
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "value", Value: value},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}
	_, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: key}}, update, options.UpdateOne().SetUpsert(true))
	return err
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	_, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	return err
}

// Healthcheck pings the primary of the storage database's deployment.
func (s *Storage) Healthcheck(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return errors.Join(ErrUnhealthy, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Storage) Close(ctx context.Context) error {
	return s.coll.Database().Client().Disconnect(ctx)
}

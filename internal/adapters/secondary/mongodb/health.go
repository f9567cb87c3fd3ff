package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthStore exposes the connectivity probes the health endpoints use.
type HealthStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewHealthStore creates a health store over an established client.
func NewHealthStore(client *mongo.Client, db *mongo.Database) *HealthStore {
	return &HealthStore{client: client, db: db}
}

// Ping verifies the primary is reachable.
func (s *HealthStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// CollectionNames lists the collections in the configured database.
func (s *HealthStore) CollectionNames(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.M{})
}

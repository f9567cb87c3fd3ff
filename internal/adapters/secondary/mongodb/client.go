// Package mongodb contains the secondary adapters backed by the MongoDB
// document store.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/lorrc/customer-service-backend/internal/config"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
)

// Collection names. The store is schemaless; these are the only fixed points.
const (
	CollectionUser     = "user"
	CollectionTicket   = "ticket"
	CollectionMessage  = "message"
	CollectionFaq      = "faq"
	CollectionFeedback = "feedback"
)

// Connect establishes a client and verifies the deployment with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

// objectIDFromHex converts a wire identifier into an ObjectID. Bad input maps
// onto the invalid-ID sentinel so it surfaces as a client error, not a 500.
func objectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrInvalidID
	}
	return oid, nil
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/panaderia/backend/internal/pkg/config"
)

const (
	// defaultTimeout bounds every repository call.
	defaultTimeout = 10 * time.Second
	startupTimeout = 15 * time.Second
	indexTimeout   = 30 * time.Second

	appName = "panaderia"
)

// clientOptions sets what the repositories rely on: point reads go to the
// primary and a dead server surfaces as an error within defaultTimeout.
func clientOptions(cfg config.MongoConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetReadPreference(readpref.Primary()).
		SetServerSelectionTimeout(defaultTimeout)
}

// Connect opens the client, pings the primary and returns the configured
// database. Failing here aborts startup.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect %s: %w", cfg.Database, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the unique blind-index indexes login relies on.
// Sparse so documents written before the index fields existed do not collide.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	unique := options.Index().SetUnique(true).SetSparse(true)
	indexes := map[string]string{
		CollectionClients: "correoIndice",
		CollectionAdmins:  "usuarioIndice",
	}
	for collection, field := range indexes {
		_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("ensure index %s.%s: %w", collection, field, err)
		}
	}
	return nil
}

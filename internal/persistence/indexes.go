package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the service relies on. The unique
// indexes on username and email are the arbiter for concurrent
// registrations with the same identifier; everything else is for query
// shape. Creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	postIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "deleted", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection("posts").Indexes().CreateMany(ctx, postIndexes); err != nil {
		return err
	}

	logger.Info("ensured mongodb indexes")
	return nil
}

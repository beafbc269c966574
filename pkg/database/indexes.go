package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application depends on. It is
// idempotent; CreateMany is a no-op for indexes that already exist. The
// unique email index is what actually enforces one account per address
// under concurrent registration.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	creators := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"users", createUsersIndexes},
		{"reports", createReportsIndexes},
		{"sos_alerts", createSOSIndexes},
		{"queries", createQueriesIndexes},
	}

	for _, c := range creators {
		if err := c.fn(ctx, db); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", c.name, err)
		}
	}

	return nil
}

func createUsersIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}

	_, err := db.Collection("users").Indexes().CreateMany(ctx, indexes)
	return err
}

func createReportsIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "submitted_by", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "assigned_counselor_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := db.Collection("reports").Indexes().CreateMany(ctx, indexes)
	return err
}

func createSOSIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
	}

	_, err := db.Collection("sos_alerts").Indexes().CreateMany(ctx, indexes)
	return err
}

func createQueriesIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := db.Collection("queries").Indexes().CreateMany(ctx, indexes)
	return err
}

package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"suraksha/internal/models"
	"suraksha/internal/repositories/interfaces"
	"suraksha/internal/utils"
)

type queryRepository struct {
	collection *mongo.Collection
}

func NewQueryRepository(db *mongo.Database) interfaces.QueryRepository {
	return &queryRepository{
		collection: db.Collection("queries"),
	}
}

func (r *queryRepository) Create(ctx context.Context, query *models.Query) error {
	query.ID = primitive.NewObjectID()
	query.CreatedAt = time.Now()
	query.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create query: %w", err)
	}

	return nil
}

func (r *queryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Query, error) {
	var query models.Query
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&query)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get query: %w", err)
	}

	return &query, nil
}

func (r *queryRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Query, error) {
	updates["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var query models.Query
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		opts,
	).Decode(&query)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update query: %w", err)
	}

	return &query, nil
}

func (r *queryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete query: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *queryRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Query, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count queries: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find queries: %w", err)
	}
	defer cursor.Close(ctx)

	var queries []*models.Query
	for cursor.Next(ctx) {
		var query models.Query
		if err := cursor.Decode(&query); err != nil {
			return nil, 0, fmt.Errorf("failed to decode query: %w", err)
		}
		queries = append(queries, &query)
	}

	return queries, total, cursor.Err()
}

package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"suraksha/internal/models"
	"suraksha/internal/repositories/interfaces"
	"suraksha/internal/utils"
)

type sosRepository struct {
	collection *mongo.Collection
}

func NewSOSRepository(db *mongo.Database) interfaces.SOSRepository {
	return &sosRepository{
		collection: db.Collection("sos_alerts"),
	}
}

func (r *sosRepository) Create(ctx context.Context, alert *models.SOSAlert) error {
	alert.ID = primitive.NewObjectID()
	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to create SOS alert: %w", err)
	}

	return nil
}

func (r *sosRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error) {
	var alert models.SOSAlert
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get SOS alert: %w", err)
	}

	return &alert, nil
}

func (r *sosRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete SOS alert: %w", err)
	}
	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *sosRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count SOS alerts: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find SOS alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*models.SOSAlert
	for cursor.Next(ctx) {
		var alert models.SOSAlert
		if err := cursor.Decode(&alert); err != nil {
			return nil, 0, fmt.Errorf("failed to decode SOS alert: %w", err)
		}
		alerts = append(alerts, &alert)
	}

	return alerts, total, cursor.Err()
}

package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/utils"
)

type SOSRepository interface {
	Create(ctx context.Context, alert *models.SOSAlert) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error)
}

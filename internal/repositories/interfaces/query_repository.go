package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/utils"
)

type QueryRepository interface {
	Create(ctx context.Context, query *models.Query) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Query, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Query, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Query, int64, error)
}

package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/utils"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Report, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListBySubmitter(ctx context.Context, userID primitive.ObjectID) ([]*models.Report, error)
	ListByCounselor(ctx context.Context, counselorID primitive.ObjectID) ([]*models.Report, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Report, int64, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/policy"
	"suraksha/internal/repositories/interfaces"
	"suraksha/internal/utils"
	"suraksha/pkg/logger"
)

// QueryService manages anonymous contact queries and the admin reply
// flow. Submitting needs no account, so there is no caller identity on
// Submit.
type QueryService interface {
	Submit(ctx context.Context, request *SubmitQueryRequest) (*models.Query, error)
	ListAll(ctx context.Context, callerRole models.Role, params *utils.PaginationParams) ([]*models.Query, int64, error)
	Delete(ctx context.Context, callerRole models.Role, queryID primitive.ObjectID) error
	Reply(ctx context.Context, callerRole models.Role, queryID primitive.ObjectID, request *ReplyQueryRequest) (*models.Query, error)
}

type SubmitQueryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"required"`
}

type ReplyQueryRequest struct {
	ReplyMessage string `json:"replyMessage" validate:"required"`
}

type queryService struct {
	queryRepo    interfaces.QueryRepository
	emailService EmailService
	logger       *logger.Logger
}

func NewQueryService(
	queryRepo interfaces.QueryRepository,
	emailService EmailService,
	logger *logger.Logger,
) QueryService {
	return &queryService{
		queryRepo:    queryRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *queryService) Submit(ctx context.Context, request *SubmitQueryRequest) (*models.Query, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	query := &models.Query{
		Name:    request.Name,
		Email:   utils.NormalizeEmail(request.Email),
		Message: request.Message,
		Type:    request.Type,
		Status:  models.QueryStatusOpen,
	}

	if err := s.queryRepo.Create(ctx, query); err != nil {
		s.logger.WithError(err).Error("Failed to persist query")
		return nil, err
	}

	s.logger.WithField("query_id", query.ID.Hex()).Info("Query submitted")

	return query, nil
}

func (s *queryService) ListAll(ctx context.Context, callerRole models.Role, params *utils.PaginationParams) ([]*models.Query, int64, error) {
	if !policy.Allow(policy.QueryListAll, callerRole, false) {
		return nil, 0, ErrForbidden
	}

	return s.queryRepo.ListAll(ctx, params)
}

func (s *queryService) Delete(ctx context.Context, callerRole models.Role, queryID primitive.ObjectID) error {
	if !policy.Allow(policy.QueryDelete, callerRole, false) {
		return ErrForbidden
	}

	if err := s.queryRepo.Delete(ctx, queryID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.WithField("query_id", queryID.Hex()).Info("Query deleted")

	return nil
}

// Reply emails the answer to the submitter and only then records it.
// If the mail cannot be sent the query stays Open so the admin can
// retry.
func (s *queryService) Reply(ctx context.Context, callerRole models.Role, queryID primitive.ObjectID, request *ReplyQueryRequest) (*models.Query, error) {
	if !policy.Allow(policy.QueryReply, callerRole, false) {
		return nil, ErrForbidden
	}

	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: reply message is required", ErrValidation)
	}

	query, err := s.queryRepo.GetByID(ctx, queryID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	subject := fmt.Sprintf("Re: Your %s Request from Suraksha", query.Type)
	body := replyEmailBody(query, request.ReplyMessage)

	if err := s.emailService.SendEmail(ctx, query.Email, subject, body); err != nil {
		s.logger.WithError(err).WithField("query_id", query.ID.Hex()).Error("Failed to send reply email")
		return nil, err
	}

	updated, err := s.queryRepo.Update(ctx, queryID, map[string]interface{}{
		"status": models.QueryStatusAnswered,
		"answer": request.ReplyMessage,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("query_id", queryID.Hex()).Info("Query answered")

	return updated, nil
}

func replyEmailBody(query *models.Query, reply string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>Hello %s,</p>", html.EscapeString(query.Name)))
	b.WriteString("<p>Thank you for reaching out to us. Here is our response to your query:</p>")
	b.WriteString(`<blockquote style="border-left: 4px solid #ccc; padding-left: 16px; color: #555;">`)
	b.WriteString(html.EscapeString(reply))
	b.WriteString("</blockquote>")
	b.WriteString("<p>Your original message:</p>")
	b.WriteString(`<blockquote style="border-left: 4px solid #eee; padding-left: 16px; color: #888;">`)
	b.WriteString(html.EscapeString(query.Message))
	b.WriteString("</blockquote>")
	b.WriteString("<p>Sincerely,<br>The Suraksha Team</p>")
	return b.String()
}

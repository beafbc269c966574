package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/policy"
	"suraksha/internal/repositories/interfaces"
	"suraksha/internal/utils"
	"suraksha/pkg/logger"
	"suraksha/pkg/sms"
)

// SOSService handles emergency alerts. Raising an alert never fails on
// the notification side alone; persistence is the only hard dependency.
type SOSService interface {
	Raise(ctx context.Context, userID primitive.ObjectID, request *RaiseSOSRequest) (*models.SOSAlert, error)
	ListAll(ctx context.Context, callerRole models.Role, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error)
	Delete(ctx context.Context, callerRole models.Role, alertID primitive.ObjectID) error
}

type RaiseSOSRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

type sosService struct {
	sosRepo      interfaces.SOSRepository
	userRepo     interfaces.UserRepository
	publisher    Publisher
	smsProvider  sms.Provider
	onCallNumber string
	logger       *logger.Logger
}

// NewSOSService builds the SOS service. smsProvider may be nil; the
// escalation SMS is skipped when it is, or when onCallNumber is empty.
func NewSOSService(
	sosRepo interfaces.SOSRepository,
	userRepo interfaces.UserRepository,
	publisher Publisher,
	smsProvider sms.Provider,
	onCallNumber string,
	logger *logger.Logger,
) SOSService {
	return &sosService{
		sosRepo:      sosRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		smsProvider:  smsProvider,
		onCallNumber: onCallNumber,
		logger:       logger,
	}
}

func (s *sosService) Raise(ctx context.Context, userID primitive.ObjectID, request *RaiseSOSRequest) (*models.SOSAlert, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: location coordinates are required", ErrValidation)
	}

	alert := &models.SOSAlert{
		UserID: userID,
		Location: models.GeoPoint{
			Latitude:  *request.Latitude,
			Longitude: *request.Longitude,
		},
	}

	if err := s.sosRepo.Create(ctx, alert); err != nil {
		s.logger.WithError(err).WithUserID(userID).Error("Failed to persist SOS alert")
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		// The alert is already stored; missing identity only degrades
		// the realtime payload.
		s.logger.WithError(err).WithUserID(userID).Warn("Failed to resolve SOS sender")
	} else {
		alert.User = &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}
	}

	s.publisher.Publish(EventSOSNew, alert)
	s.escalate(ctx, alert)

	s.logger.WithUserID(userID).WithField("alert_id", alert.ID.Hex()).Warn("SOS alert raised")

	return alert, nil
}

func (s *sosService) ListAll(ctx context.Context, callerRole models.Role, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	if !policy.Allow(policy.SOSListAll, callerRole, false) {
		return nil, 0, ErrForbidden
	}

	// SOS documents carry a timestamp field rather than created_at.
	if params.Sort == "" || params.Sort == "created_at" {
		params.Sort = "timestamp"
	}

	alerts, total, err := s.sosRepo.ListAll(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	s.resolveSenders(ctx, alerts)

	return alerts, total, nil
}

func (s *sosService) Delete(ctx context.Context, callerRole models.Role, alertID primitive.ObjectID) error {
	if !policy.Allow(policy.SOSDelete, callerRole, false) {
		return ErrForbidden
	}

	if err := s.sosRepo.Delete(ctx, alertID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.WithField("alert_id", alertID.Hex()).Info("SOS alert deleted")

	return nil
}

// escalate sends the on-call SMS on a best effort basis. Delivery
// failure is logged and swallowed so the alert itself still succeeds.
func (s *sosService) escalate(ctx context.Context, alert *models.SOSAlert) {
	if s.smsProvider == nil || s.onCallNumber == "" {
		return
	}

	name := "A user"
	if alert.User != nil {
		name = alert.User.Name
	}

	message := fmt.Sprintf(
		"SOS alert from %s at https://maps.google.com/?q=%f,%f",
		name, alert.Location.Latitude, alert.Location.Longitude,
	)

	if err := s.smsProvider.SendSMS(ctx, s.onCallNumber, message); err != nil {
		s.logger.WithError(err).WithField("alert_id", alert.ID.Hex()).Error("Failed to send SOS escalation SMS")
	}
}

func (s *sosService) resolveSenders(ctx context.Context, alerts []*models.SOSAlert) {
	if len(alerts) == 0 {
		return
	}

	seen := make(map[primitive.ObjectID]struct{})
	ids := make([]primitive.ObjectID, 0, len(alerts))
	for _, alert := range alerts {
		if _, ok := seen[alert.UserID]; ok {
			continue
		}
		seen[alert.UserID] = struct{}{}
		ids = append(ids, alert.UserID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to resolve SOS senders")
		return
	}

	byID := make(map[primitive.ObjectID]*models.UserInfo, len(users))
	for _, user := range users {
		byID[user.ID] = &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}
	}

	for _, alert := range alerts {
		alert.User = byID[alert.UserID]
	}
}

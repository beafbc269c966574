package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/policy"
	"suraksha/internal/repositories/interfaces"
	"suraksha/internal/utils"
	"suraksha/pkg/logger"
)

// Realtime event names broadcast to connected observers.
const (
	EventReportNew    = "report:new"
	EventReportUpdate = "report:update"
	EventSOSNew       = "sos:new"
)

// Publisher is the one-way fan-out the workflow publishes into.
// Implementations must not block; delivery is best effort.
type Publisher interface {
	Publish(event string, payload interface{})
}

// ReportService drives the report lifecycle: submission, access,
// counsellor assignment and the status state machine.
type ReportService interface {
	Submit(ctx context.Context, reporterID primitive.ObjectID, request *SubmitReportRequest) (*models.Report, error)
	Get(ctx context.Context, reportID, callerID primitive.ObjectID, role models.Role) (*models.Report, error)
	ListMine(ctx context.Context, callerID primitive.ObjectID) ([]*models.Report, error)
	ListAll(ctx context.Context, role models.Role, params *utils.PaginationParams) ([]*models.Report, int64, error)
	ListAssigned(ctx context.Context, callerID primitive.ObjectID, role models.Role) ([]*models.Report, error)
	Delete(ctx context.Context, reportID, callerID primitive.ObjectID, role models.Role) error
	Assign(ctx context.Context, reportID primitive.ObjectID, request *AssignRequest, role models.Role) (*models.Report, error)
	SetStatusAdmin(ctx context.Context, reportID primitive.ObjectID, status models.ReportStatus, role models.Role) (*models.Report, error)
	SetStatusCounsellor(ctx context.Context, reportID primitive.ObjectID, status models.ReportStatus, callerID primitive.ObjectID, role models.Role) (*models.Report, error)
}

type SubmitReportRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description" validate:"required"`
	Location       string    `json:"location"`
	DateOfIncident time.Time `json:"date_of_incident" validate:"required"`
	Type           string    `json:"type" validate:"required"`
	OtherType      string    `json:"other_type"`
	// IsAnonymous defaults to true when absent from the request body.
	IsAnonymous *bool `json:"is_anonymous"`
}

type AssignRequest struct {
	CounselorName string `json:"counselor_name" validate:"required"`
	CounselorID   string `json:"counselor_id"`
}

type reportService struct {
	reportRepo interfaces.ReportRepository
	userRepo   interfaces.UserRepository
	publisher  Publisher
	logger     *logger.Logger
}

func NewReportService(
	reportRepo interfaces.ReportRepository,
	userRepo interfaces.UserRepository,
	publisher Publisher,
	logger *logger.Logger,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *reportService) Submit(ctx context.Context, reporterID primitive.ObjectID, request *SubmitReportRequest) (*models.Report, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	isAnonymous := true
	if request.IsAnonymous != nil {
		isAnonymous = *request.IsAnonymous
	}

	report := &models.Report{
		SubmittedBy:       reporterID,
		Title:             request.Title,
		Description:       request.Description,
		Location:          request.Location,
		DateOfIncident:    request.DateOfIncident,
		Type:              request.Type,
		OtherType:         request.OtherType,
		IsAnonymous:       isAnonymous,
		Status:            models.StatusSubmitted,
		AssignedCounselor: models.DefaultCounselorName,
	}
	if utils.IsBlank(report.Title) {
		report.Title = models.DefaultReportTitle
	}
	if utils.IsBlank(report.Location) {
		report.Location = models.DefaultReportLocation
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.WithError(err).Error("Failed to create report")
		return nil, err
	}

	s.publisher.Publish(EventReportNew, report)
	s.logger.WithReportID(report.ID).WithUserID(reporterID).Info("Report submitted")

	return report, nil
}

func (s *reportService) Get(ctx context.Context, reportID, callerID primitive.ObjectID, role models.Role) (*models.Report, error) {
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if !policy.Allow(policy.ReportGet, role, report.SubmittedBy == callerID) {
		return nil, ErrUnauthorized
	}

	return report, nil
}

func (s *reportService) ListMine(ctx context.Context, callerID primitive.ObjectID) ([]*models.Report, error) {
	reports, err := s.reportRepo.ListBySubmitter(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.resolveSubmitters(ctx, reports); err != nil {
		return nil, err
	}

	return reports, nil
}

func (s *reportService) ListAll(ctx context.Context, role models.Role, params *utils.PaginationParams) ([]*models.Report, int64, error) {
	if !policy.Allow(policy.ReportListAll, role, false) {
		return nil, 0, ErrForbidden
	}

	reports, total, err := s.reportRepo.ListAll(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	if err := s.resolveSubmitters(ctx, reports); err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (s *reportService) ListAssigned(ctx context.Context, callerID primitive.ObjectID, role models.Role) ([]*models.Report, error) {
	if !policy.Allow(policy.ReportListAssigned, role, false) {
		return nil, ErrForbidden
	}

	reports, err := s.reportRepo.ListByCounselor(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.resolveSubmitters(ctx, reports); err != nil {
		return nil, err
	}

	return reports, nil
}

func (s *reportService) Delete(ctx context.Context, reportID, callerID primitive.ObjectID, role models.Role) error {
	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return err
	}

	if !policy.Allow(policy.ReportDelete, role, report.SubmittedBy == callerID) {
		return ErrUnauthorized
	}

	if err := s.reportRepo.Delete(ctx, reportID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.WithReportID(reportID).WithUserID(callerID).Info("Report deleted")

	return nil
}

// Assign sets the counsellor and forces the report into Assigned,
// whatever its prior state.
func (s *reportService) Assign(ctx context.Context, reportID primitive.ObjectID, request *AssignRequest, role models.Role) (*models.Report, error) {
	if !policy.Allow(policy.ReportAssign, role, false) {
		return nil, ErrForbidden
	}

	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	updates := map[string]interface{}{
		"assigned_counselor": request.CounselorName,
		"status":             models.StatusAssigned,
	}

	if request.CounselorID != "" {
		counselorID, err := primitive.ObjectIDFromHex(request.CounselorID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid counselor id", ErrValidation)
		}

		counselor, err := s.userRepo.GetByID(ctx, counselorID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, fmt.Errorf("%w: counselor account not found", ErrValidation)
			}
			return nil, err
		}
		if counselor.Role != models.RoleCounsellor {
			return nil, fmt.Errorf("%w: assignee is not a counsellor", ErrValidation)
		}

		updates["assigned_counselor_id"] = counselorID
	}

	report, err := s.reportRepo.Update(ctx, reportID, updates)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.publisher.Publish(EventReportUpdate, report)
	s.logger.WithReportID(reportID).WithField("counselor", request.CounselorName).Info("Report assigned")

	return report, nil
}

func (s *reportService) SetStatusAdmin(ctx context.Context, reportID primitive.ObjectID, status models.ReportStatus, role models.Role) (*models.Report, error) {
	if !policy.Allow(policy.ReportSetStatus, role, false) {
		return nil, ErrForbidden
	}

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	return s.setStatus(ctx, reportID, status)
}

func (s *reportService) SetStatusCounsellor(ctx context.Context, reportID primitive.ObjectID, status models.ReportStatus, callerID primitive.ObjectID, role models.Role) (*models.Report, error) {
	if !policy.RoleEligible(policy.ReportSetStatusAssigned, role) {
		return nil, ErrForbidden
	}

	if !policy.CounsellorStatusAllowed(status) {
		return nil, ErrInvalidStatus
	}

	report, err := s.getReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	assigned := report.AssignedCounselorID != nil && *report.AssignedCounselorID == callerID
	if !policy.Allow(policy.ReportSetStatusAssigned, role, assigned) {
		return nil, ErrUnauthorized
	}

	return s.setStatus(ctx, reportID, status)
}

// Helper methods
func (s *reportService) getReport(ctx context.Context, reportID primitive.ObjectID) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *reportService) setStatus(ctx context.Context, reportID primitive.ObjectID, status models.ReportStatus) (*models.Report, error) {
	report, err := s.reportRepo.Update(ctx, reportID, map[string]interface{}{"status": status})
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.publisher.Publish(EventReportUpdate, report)
	s.logger.WithReportID(reportID).WithField("status", string(status)).Info("Report status changed")

	return report, nil
}

// resolveSubmitters attaches the owner's name and email to each report
// in a single users lookup.
func (s *reportService) resolveSubmitters(ctx context.Context, reports []*models.Report) error {
	if len(reports) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, report := range reports {
		if !seen[report.SubmittedBy] {
			seen[report.SubmittedBy] = true
			ids = append(ids, report.SubmittedBy)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]*models.UserInfo, len(users))
	for _, user := range users {
		byID[user.ID] = &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}
	}

	for _, report := range reports {
		report.Submitter = byID[report.SubmittedBy]
	}

	return nil
}

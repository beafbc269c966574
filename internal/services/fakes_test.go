package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/repositories/interfaces"
	"suraksha/internal/utils"
	"suraksha/pkg/logger"
)

func newTestLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "text", Output: "stderr"})
	if err != nil {
		panic(err)
	}
	return log
}

type publishedEvent struct {
	event   string
	payload interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(event string, payload interface{}) {
	p.events = append(p.events, publishedEvent{event: event, payload: payload})
}

func (p *fakePublisher) last() *publishedEvent {
	if len(p.events) == 0 {
		return nil
	}
	return &p.events[len(p.events)-1]
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeEmailService struct {
	sent []sentMail
	fail error
}

func (m *fakeEmailService) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

type sentSMS struct {
	to      string
	message string
}

type fakeSMSProvider struct {
	sent []sentSMS
	fail error
}

func (s *fakeSMSProvider) SendSMS(ctx context.Context, to, message string) error {
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, sentSMS{to: to, message: message})
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
	// createErr makes the next Create fail, e.g. with a duplicate
	// insert the way the unique email index reports one.
	createErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	var result []*models.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			result = append(result, user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	user, ok := r.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "otp":
			user.OTP = value.(string)
		case "otp_expires":
			if value == nil {
				user.OTPExpires = nil
			} else if t, ok := value.(time.Time); ok {
				user.OTPExpires = &t
			}
		case "name":
			user.Name = value.(string)
		case "password":
			user.Password = value.(string)
		}
	}
	return nil
}

type fakeReportRepo struct {
	reports map[primitive.ObjectID]*models.Report
}

func newFakeReportRepo(reports ...*models.Report) *fakeReportRepo {
	repo := &fakeReportRepo{reports: make(map[primitive.ObjectID]*models.Report)}
	for _, report := range reports {
		repo.reports[report.ID] = report
	}
	return repo
}

func (r *fakeReportRepo) Create(ctx context.Context, report *models.Report) error {
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return report, nil
}

func (r *fakeReportRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			report.Status = value.(models.ReportStatus)
		case "assigned_counselor":
			report.AssignedCounselor = value.(string)
		case "assigned_counselor_id":
			id := value.(primitive.ObjectID)
			report.AssignedCounselorID = &id
		}
	}
	return report, nil
}

func (r *fakeReportRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.reports[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.reports, id)
	return nil
}

func (r *fakeReportRepo) ListBySubmitter(ctx context.Context, userID primitive.ObjectID) ([]*models.Report, error) {
	var result []*models.Report
	for _, report := range r.reports {
		if report.SubmittedBy == userID {
			result = append(result, report)
		}
	}
	sortReports(result)
	return result, nil
}

func (r *fakeReportRepo) ListByCounselor(ctx context.Context, counselorID primitive.ObjectID) ([]*models.Report, error) {
	var result []*models.Report
	for _, report := range r.reports {
		if report.AssignedCounselorID != nil && *report.AssignedCounselorID == counselorID {
			result = append(result, report)
		}
	}
	sortReports(result)
	return result, nil
}

func (r *fakeReportRepo) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Report, int64, error) {
	var result []*models.Report
	for _, report := range r.reports {
		result = append(result, report)
	}
	sortReports(result)
	return result, int64(len(result)), nil
}

func sortReports(reports []*models.Report) {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
}

type fakeSOSRepo struct {
	alerts map[primitive.ObjectID]*models.SOSAlert
	// listParams captures the last ListAll pagination for assertions.
	listParams *utils.PaginationParams
}

func newFakeSOSRepo(alerts ...*models.SOSAlert) *fakeSOSRepo {
	repo := &fakeSOSRepo{alerts: make(map[primitive.ObjectID]*models.SOSAlert)}
	for _, alert := range alerts {
		repo.alerts[alert.ID] = alert
	}
	return repo
}

func (r *fakeSOSRepo) Create(ctx context.Context, alert *models.SOSAlert) error {
	if alert.ID.IsZero() {
		alert.ID = primitive.NewObjectID()
	}
	r.alerts[alert.ID] = alert
	return nil
}

func (r *fakeSOSRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SOSAlert, error) {
	alert, ok := r.alerts[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return alert, nil
}

func (r *fakeSOSRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.alerts[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.alerts, id)
	return nil
}

func (r *fakeSOSRepo) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.SOSAlert, int64, error) {
	r.listParams = params
	var result []*models.SOSAlert
	for _, alert := range r.alerts {
		result = append(result, alert)
	}
	return result, int64(len(result)), nil
}

type fakeQueryRepo struct {
	queries map[primitive.ObjectID]*models.Query
}

func newFakeQueryRepo(queries ...*models.Query) *fakeQueryRepo {
	repo := &fakeQueryRepo{queries: make(map[primitive.ObjectID]*models.Query)}
	for _, query := range queries {
		repo.queries[query.ID] = query
	}
	return repo
}

func (r *fakeQueryRepo) Create(ctx context.Context, query *models.Query) error {
	if query.ID.IsZero() {
		query.ID = primitive.NewObjectID()
	}
	r.queries[query.ID] = query
	return nil
}

func (r *fakeQueryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Query, error) {
	query, ok := r.queries[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return query, nil
}

func (r *fakeQueryRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Query, error) {
	query, ok := r.queries[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			query.Status = value.(models.QueryStatus)
		case "answer":
			query.Answer = value.(string)
		}
	}
	return query, nil
}

func (r *fakeQueryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.queries[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.queries, id)
	return nil
}

func (r *fakeQueryRepo) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Query, int64, error) {
	var result []*models.Query
	for _, query := range r.queries {
		result = append(result, query)
	}
	return result, int64(len(result)), nil
}

var errStore = errors.New("store failure")

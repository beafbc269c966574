package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"suraksha/internal/models"
	"suraksha/internal/utils"
)

func float64Ptr(v float64) *float64 { return &v }

func TestRaiseSOS(t *testing.T) {
	sosRepo := newFakeSOSRepo()
	user := &models.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.org"}
	userRepo := newFakeUserRepo(user)
	publisher := &fakePublisher{}
	smsProvider := &fakeSMSProvider{}
	service := NewSOSService(sosRepo, userRepo, publisher, smsProvider, "+1555000111", newTestLogger())

	alert, err := service.Raise(context.Background(), user.ID, &RaiseSOSRequest{
		Latitude:  float64Ptr(12.9716),
		Longitude: float64Ptr(77.5946),
	})
	if err != nil {
		t.Fatalf("Raise failed: %v", err)
	}

	if alert.Location.Latitude != 12.9716 || alert.Location.Longitude != 77.5946 {
		t.Errorf("unexpected location %+v", alert.Location)
	}
	if alert.User == nil || alert.User.Name != "Asha" {
		t.Errorf("expected sender identity on the alert, got %+v", alert.User)
	}

	event := publisher.last()
	if event == nil || event.event != EventSOSNew {
		t.Fatalf("expected %s event, got %+v", EventSOSNew, event)
	}

	if len(smsProvider.sent) != 1 {
		t.Fatalf("expected one escalation SMS, got %d", len(smsProvider.sent))
	}
	if smsProvider.sent[0].to != "+1555000111" {
		t.Errorf("SMS should go to the on-call number, got %q", smsProvider.sent[0].to)
	}
	if !strings.Contains(smsProvider.sent[0].message, "Asha") {
		t.Errorf("SMS should name the sender: %q", smsProvider.sent[0].message)
	}
}

func TestSOSPayloadsOmitSenderRole(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "Meera", Email: "meera@example.org", Role: models.RoleAdmin}
	sosRepo := newFakeSOSRepo()
	publisher := &fakePublisher{}
	service := NewSOSService(sosRepo, newFakeUserRepo(user), publisher, nil, "", newTestLogger())

	alert, err := service.Raise(context.Background(), user.ID, &RaiseSOSRequest{
		Latitude:  float64Ptr(1),
		Longitude: float64Ptr(2),
	})
	if err != nil {
		t.Fatalf("Raise failed: %v", err)
	}

	if alert.User == nil || alert.User.Role != "" {
		t.Errorf("alert must not carry the sender role, got %+v", alert.User)
	}
	event := publisher.last()
	published, ok := event.payload.(*models.SOSAlert)
	if !ok {
		t.Fatalf("expected an alert payload, got %T", event.payload)
	}
	if published.User == nil || published.User.Role != "" {
		t.Errorf("published payload must not carry the sender role, got %+v", published.User)
	}

	alerts, _, err := service.ListAll(context.Background(), models.RoleAdmin, &utils.PaginationParams{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if alerts[0].User == nil || alerts[0].User.Role != "" {
		t.Errorf("listed alerts must not carry the sender role, got %+v", alerts[0].User)
	}
}

func TestRaiseSOSRequiresCoordinates(t *testing.T) {
	service := NewSOSService(newFakeSOSRepo(), newFakeUserRepo(), &fakePublisher{}, nil, "", newTestLogger())

	cases := []*RaiseSOSRequest{
		{},
		{Latitude: float64Ptr(12.9)},
		{Longitude: float64Ptr(77.5)},
	}
	for i, request := range cases {
		if _, err := service.Raise(context.Background(), primitive.NewObjectID(), request); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestRaiseSOSSurvivesSMSFailure(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "Asha"}
	smsProvider := &fakeSMSProvider{fail: errStore}
	service := NewSOSService(newFakeSOSRepo(), newFakeUserRepo(user), &fakePublisher{}, smsProvider, "+1555000111", newTestLogger())

	_, err := service.Raise(context.Background(), user.ID, &RaiseSOSRequest{
		Latitude:  float64Ptr(1),
		Longitude: float64Ptr(2),
	})
	if err != nil {
		t.Fatalf("alert must succeed even when the SMS fails: %v", err)
	}
}

func TestSOSListAll(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.org"}
	alert := &models.SOSAlert{ID: primitive.NewObjectID(), UserID: user.ID}
	sosRepo := newFakeSOSRepo(alert)
	service := NewSOSService(sosRepo, newFakeUserRepo(user), &fakePublisher{}, nil, "", newTestLogger())

	_, _, err := service.ListAll(context.Background(), models.RoleUser, &utils.PaginationParams{Page: 1, PageSize: 20})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user, got %v", err)
	}

	params := &utils.PaginationParams{Page: 1, PageSize: 20, Sort: "created_at", Order: "desc"}
	alerts, total, err := service.ListAll(context.Background(), models.RoleAdmin, params)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if total != 1 || len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d (total %d)", len(alerts), total)
	}
	if alerts[0].User == nil || alerts[0].User.Name != "Asha" {
		t.Errorf("expected sender identity resolved, got %+v", alerts[0].User)
	}
	if sosRepo.listParams.Sort != "timestamp" {
		t.Errorf("alerts sort by timestamp, got %q", sosRepo.listParams.Sort)
	}
}

func TestSOSDelete(t *testing.T) {
	alert := &models.SOSAlert{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	sosRepo := newFakeSOSRepo(alert)
	service := NewSOSService(sosRepo, newFakeUserRepo(), &fakePublisher{}, nil, "", newTestLogger())

	if err := service.Delete(context.Background(), models.RoleUser, alert.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user, got %v", err)
	}

	if err := service.Delete(context.Background(), models.RoleAdmin, alert.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if err := service.Delete(context.Background(), models.RoleAdmin, alert.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

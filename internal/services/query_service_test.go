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

func newQueryFixture(t *testing.T) (QueryService, *fakeQueryRepo, *fakeEmailService) {
	t.Helper()
	queryRepo := newFakeQueryRepo()
	email := &fakeEmailService{}
	service := NewQueryService(queryRepo, email, newTestLogger())
	return service, queryRepo, email
}

func TestSubmitQuery(t *testing.T) {
	service, queryRepo, _ := newQueryFixture(t)

	query, err := service.Submit(context.Background(), &SubmitQueryRequest{
		Name:    "Asha",
		Email:   "Asha@Example.org",
		Message: "I need information about counselling",
		Type:    "Counselling",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if query.Status != models.QueryStatusOpen {
		t.Errorf("new queries must be Open, got %q", query.Status)
	}
	if query.Email != "asha@example.org" {
		t.Errorf("expected normalized email, got %q", query.Email)
	}
	if len(queryRepo.queries) != 1 {
		t.Error("query should be stored")
	}
}

func TestSubmitQueryValidation(t *testing.T) {
	service, _, _ := newQueryFixture(t)

	cases := []SubmitQueryRequest{
		{Email: "a@b.org", Message: "m", Type: "t"},
		{Name: "n", Message: "m", Type: "t"},
		{Name: "n", Email: "a@b.org", Type: "t"},
		{Name: "n", Email: "a@b.org", Message: "m"},
		{Name: "n", Email: "not-an-email", Message: "m", Type: "t"},
	}
	for i, request := range cases {
		if _, err := service.Submit(context.Background(), &request); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestQueryListAllRequiresAdmin(t *testing.T) {
	service, _, _ := newQueryFixture(t)
	params := &utils.PaginationParams{Page: 1, PageSize: 20}

	if _, _, err := service.ListAll(context.Background(), models.RoleCounsellor, params); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, _, err := service.ListAll(context.Background(), models.RoleAdmin, params); err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
}

func TestReplyQuery(t *testing.T) {
	service, queryRepo, email := newQueryFixture(t)

	query := &models.Query{
		ID:      primitive.NewObjectID(),
		Name:    "Asha",
		Email:   "asha@example.org",
		Message: "How do I reach a counsellor?",
		Type:    "Counselling",
		Status:  models.QueryStatusOpen,
	}
	queryRepo.queries[query.ID] = query

	updated, err := service.Reply(context.Background(), models.RoleAdmin, query.ID, &ReplyQueryRequest{
		ReplyMessage: "You can book a session from the contact page.",
	})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}

	if updated.Status != models.QueryStatusAnswered {
		t.Errorf("expected status %q, got %q", models.QueryStatusAnswered, updated.Status)
	}
	if updated.Answer == "" {
		t.Error("answer should be persisted")
	}

	if len(email.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(email.sent))
	}
	mail := email.sent[0]
	if mail.to != "asha@example.org" {
		t.Errorf("mail should go to the submitter, got %q", mail.to)
	}
	if mail.subject != "Re: Your Counselling Request from Suraksha" {
		t.Errorf("unexpected subject %q", mail.subject)
	}
	if !strings.Contains(mail.body, "Hello Asha") {
		t.Error("mail should greet the submitter")
	}
	if !strings.Contains(mail.body, "blockquote") {
		t.Error("mail should quote the reply")
	}
	if !strings.Contains(mail.body, "The Suraksha Team") {
		t.Error("mail should carry the signature")
	}
}

func TestReplyQueryMailFailureKeepsOpen(t *testing.T) {
	service, queryRepo, email := newQueryFixture(t)
	email.fail = errStore

	query := &models.Query{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.org", Status: models.QueryStatusOpen}
	queryRepo.queries[query.ID] = query

	_, err := service.Reply(context.Background(), models.RoleAdmin, query.ID, &ReplyQueryRequest{ReplyMessage: "hello"})
	if err == nil {
		t.Fatal("expected an error when the mail cannot be sent")
	}
	if query.Status != models.QueryStatusOpen {
		t.Error("query must stay Open when delivery fails")
	}
}

func TestReplyQueryRequiresAdmin(t *testing.T) {
	service, queryRepo, _ := newQueryFixture(t)

	query := &models.Query{ID: primitive.NewObjectID(), Status: models.QueryStatusOpen}
	queryRepo.queries[query.ID] = query

	_, err := service.Reply(context.Background(), models.RoleUser, query.ID, &ReplyQueryRequest{ReplyMessage: "hello"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDeleteQuery(t *testing.T) {
	service, queryRepo, _ := newQueryFixture(t)

	query := &models.Query{ID: primitive.NewObjectID()}
	queryRepo.queries[query.ID] = query

	if err := service.Delete(context.Background(), models.RoleUser, query.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := service.Delete(context.Background(), models.RoleAdmin, query.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if err := service.Delete(context.Background(), models.RoleAdmin, query.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

package inquiries

import (
	"context"
	"errors"
	"testing"

	"github.com/aquaplan/aquatutor-backend/internal/notifications"
	"github.com/aquaplan/aquatutor-backend/pkg/config"
	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
)

type fakeRepo struct {
	created   []*models.Inquiry
	createErr error
}

func (f *fakeRepo) Create(ctx context.Context, inquiry *models.Inquiry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, inquiry)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, limit int) ([]models.Inquiry, error) {
	return nil, nil
}

type fakeNotifier struct {
	failOn     string
	dispatched []notifications.Message
	recipients [][]string
}

func (f *fakeNotifier) Dispatch(ctx context.Context, msg notifications.Message, recipients ...string) error {
	if f.failOn != "" && msg.Template == f.failOn {
		return errors.New("delivery refused")
	}
	f.dispatched = append(f.dispatched, msg)
	f.recipients = append(f.recipients, recipients)
	return nil
}

func newTestService(t *testing.T, repo Repository, notifier Notifier) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Notifier: notifier,
		Vendor:   config.VendorConfig{OperatorEmail: "info@aquatutorai.jp"},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func submitInput() SubmitInput {
	return SubmitInput{
		Types:              []string{"document_request", "demo_request"},
		CompanyName:        "株式会社テスト",
		RepresentativeName: "山田 太郎",
		Email:              "Yamada@Example.JP",
		Phone:              "03-1234-5678",
		Message:            "資料を送ってください。",
	}
}

func TestSubmitStoresCommaJoinedTypes(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}
	svc := newTestService(t, repo, notifier)

	result, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Saved || !result.Notified {
		t.Fatalf("expected saved+notified, got %+v", result)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
	row := repo.created[0]
	if row.Type != "document_request,demo_request" {
		t.Fatalf("unexpected stored type %q", row.Type)
	}
	if row.Email != "yamada@example.jp" {
		t.Fatalf("email not lower-cased: %q", row.Email)
	}
}

func TestSubmitSubjectsUseFirstTypeLabel(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}
	svc := newTestService(t, repo, notifier)

	if _, err := svc.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(notifier.dispatched) != 2 {
		t.Fatalf("expected confirmation and operator mail, got %d", len(notifier.dispatched))
	}
	if notifier.dispatched[0].Subject != "【資料請求】お問い合わせありがとうございます" {
		t.Fatalf("unexpected confirmation subject %q", notifier.dispatched[0].Subject)
	}
	if notifier.dispatched[1].Subject != "【資料請求】新規お問い合わせ" {
		t.Fatalf("unexpected operator subject %q", notifier.dispatched[1].Subject)
	}
	if got := notifier.recipients[0]; len(got) != 1 || got[0] != "yamada@example.jp" {
		t.Fatalf("unexpected confirmation recipients %v", got)
	}
	if got := notifier.recipients[1]; len(got) != 1 || got[0] != "info@aquatutorai.jp" {
		t.Fatalf("unexpected operator recipients %v", got)
	}
}

func TestSubmitRejectsUnknownType(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, &fakeNotifier{})
	input := submitInput()
	input.Types = []string{"spam"}

	_, err := svc.Submit(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitRequiresAtLeastOneType(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, &fakeNotifier{})
	input := submitInput()
	input.Types = []string{" ", ""}

	_, err := svc.Submit(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitPersistenceFailureAborts(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("insert refused")}
	notifier := &fakeNotifier{}
	svc := newTestService(t, repo, notifier)

	_, err := svc.Submit(context.Background(), submitInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(notifier.dispatched) != 0 {
		t.Fatal("no mail should go out when the insert fails")
	}
}

func TestSubmitMailFailureStillSaves(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{failOn: notifications.TemplateInquiryConfirm}
	svc := newTestService(t, repo, notifier)

	result, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Saved || result.Notified {
		t.Fatalf("expected saved=true notified=false, got %+v", result)
	}
	if len(repo.created) != 1 {
		t.Fatal("insert should survive mail failure")
	}
}

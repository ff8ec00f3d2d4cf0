package inquiries

import (
	"context"
	"errors"
	"strings"

	"github.com/aquaplan/aquatutor-backend/internal/notifications"
	"github.com/aquaplan/aquatutor-backend/pkg/config"
	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
)

// Notifier fans a rendered mail out to its recipients.
type Notifier interface {
	Dispatch(ctx context.Context, msg notifications.Message, recipients ...string) error
}

// SubmitInput is the contact-form payload. Types carries one or more
// intent tags; the first tag drives the mail subject.
type SubmitInput struct {
	Types              []string
	CompanyName        string
	RepresentativeName string
	Email              string
	Phone              string
	Message            string
}

// SubmitResult reports the stored row and whether both mails went out.
type SubmitResult struct {
	Inquiry  *models.Inquiry
	Saved    bool
	Notified bool
}

type ServiceParams struct {
	Repo     Repository
	Notifier Notifier
	Vendor   config.VendorConfig
	Logger   *logger.Logger
}

type Service struct {
	repo     Repository
	notifier Notifier
	vendor   config.VendorConfig
	logg     *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if params.Vendor.OperatorEmail == "" {
		return nil, errors.New("operator email is required")
	}
	return &Service{
		repo:     params.Repo,
		notifier: params.Notifier,
		vendor:   params.Vendor,
		logg:     params.Logger,
	}, nil
}

// Submit stores the inquiry and mails a confirmation to the submitter
// plus a notification to the operator. A persistence failure aborts; a
// mail failure after the insert is reported through the Notified flag.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	types, err := parseTypes(input.Types)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is not a valid address")
	}
	companyName := strings.TrimSpace(input.CompanyName)
	if companyName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}
	body := strings.TrimSpace(input.Message)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	inquiry := &models.Inquiry{
		Type:               joinTypes(types),
		CompanyName:        companyName,
		RepresentativeName: strings.TrimSpace(input.RepresentativeName),
		Email:              email,
		Phone:              strings.TrimSpace(input.Phone),
		Message:            body,
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store inquiry")
	}

	result := &SubmitResult{Inquiry: inquiry, Saved: true}

	fields := notifications.InquiryFields{
		FirstType:          types[0],
		CompanyName:        inquiry.CompanyName,
		RepresentativeName: inquiry.RepresentativeName,
		Email:              inquiry.Email,
		Phone:              inquiry.Phone,
		Body:               inquiry.Message,
	}
	if err := s.notifier.Dispatch(ctx, notifications.InquiryConfirmationMail(fields), email); err != nil {
		s.logError(ctx, "inquiry confirmation mail failed", err)
		return result, nil
	}
	if err := s.notifier.Dispatch(ctx, notifications.InquiryOperatorMail(fields), s.vendor.OperatorEmail); err != nil {
		s.logError(ctx, "inquiry operator mail failed", err)
		return result, nil
	}

	result.Notified = true
	return result, nil
}

// List returns the newest inquiries for the admin dashboard.
func (s *Service) List(ctx context.Context, limit int) ([]models.Inquiry, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list inquiries")
	}
	return rows, nil
}

func parseTypes(raw []string) ([]enums.InquiryType, error) {
	var types []enums.InquiryType
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		parsed, err := enums.ParseInquiryType(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown inquiry type")
		}
		types = append(types, parsed)
	}
	if len(types) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one inquiry type is required")
	}
	return types, nil
}

// joinTypes flattens the tags into the comma-joined storage form.
func joinTypes(types []enums.InquiryType) string {
	values := make([]string, 0, len(types))
	for _, t := range types {
		values = append(values, t.String())
	}
	return strings.Join(values, ",")
}

func (s *Service) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}

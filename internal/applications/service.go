package applications

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/aquaplan/aquatutor-backend/internal/contractdoc"
	"github.com/aquaplan/aquatutor-backend/internal/notifications"
	"github.com/aquaplan/aquatutor-backend/pkg/config"
	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
	"github.com/aquaplan/aquatutor-backend/pkg/pagination"
	"github.com/google/uuid"
)

// ProfileFinder resolves the signed-in identity before any write happens.
type ProfileFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// DocumentBuilder renders the agreement PDF for an application.
type DocumentBuilder interface {
	Build(doc contractdoc.Document, now time.Time) ([]byte, error)
}

// Notifier fans a rendered mail out to its recipients.
type Notifier interface {
	Dispatch(ctx context.Context, msg notifications.Message, recipients ...string) error
}

// ServiceParams groups dependencies for the applications service.
type ServiceParams struct {
	Repo     Repository
	Profiles ProfileFinder
	Builder  DocumentBuilder
	Notifier Notifier
	Vendor   config.VendorConfig
	Logger   *logger.Logger
}

// Service orchestrates the application lifecycle.
type Service struct {
	repo     Repository
	profiles ProfileFinder
	builder  DocumentBuilder
	notifier Notifier
	vendor   config.VendorConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds an applications service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Profiles == nil {
		return nil, errors.New("profiles finder is required")
	}
	if params.Builder == nil {
		return nil, errors.New("document builder is required")
	}
	if params.Notifier == nil {
		return nil, errors.New("notifier is required")
	}
	return &Service{
		repo:     params.Repo,
		profiles: params.Profiles,
		builder:  params.Builder,
		notifier: params.Notifier,
		vendor:   params.Vendor,
		logg:     params.Logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Submit persists a submitted application and mails the generated contract
// PDF. The insert is not rolled back when the mail step fails; the result
// reports each step outcome separately.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	signedInEmail := strings.ToLower(strings.TrimSpace(input.SignedInEmail))
	if signedInEmail == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signed-in email is required")
	}
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name is required")
	}
	if err := contractdoc.ValidateFees(input.InitialFee, input.MonthlyFee, input.ExcessFee, input.OptionFee); err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByEmail(ctx, signedInEmail)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve profile")
	}
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no profile found for signed-in email")
	}

	var contractID *uuid.UUID
	tmpl, err := s.repo.ActiveTemplate(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "contract template lookup failed", err)
		}
	} else if tmpl != nil {
		contractID = &tmpl.ID
	}

	now := s.now()
	contactEmail := strings.ToLower(strings.TrimSpace(input.ContactEmail))
	salesRepID := profile.ID
	app := &models.Application{
		ID:                 uuid.New(),
		ContractID:         contractID,
		ApplicantID:        profile.ID,
		SalesRepID:         &salesRepID,
		Status:             enums.ApplicationStatusSubmitted,
		CompanyName:        strings.TrimSpace(input.CompanyName),
		PostalCode:         strings.TrimSpace(input.PostalCode),
		Prefecture:         strings.TrimSpace(input.Prefecture),
		City:               strings.TrimSpace(input.City),
		SubArea:            strings.TrimSpace(input.SubArea),
		BuildingRoom:       strings.TrimSpace(input.BuildingRoom),
		CompanyAddress:     strings.TrimSpace(input.Prefecture + input.City + input.SubArea + input.BuildingRoom),
		RepresentativeName: strings.TrimSpace(input.RepresentativeName),
		ContactName:        strings.TrimSpace(input.ContactName),
		PhoneNumber:        strings.TrimSpace(input.ContactPhone),
		ContactEmail:       contactEmail,
		InitialFee:         strings.TrimSpace(input.InitialFee),
		MonthlyFee:         strings.TrimSpace(input.MonthlyFee),
		ExcessFee:          strings.TrimSpace(input.ExcessFee),
		OptionFee:          strings.TrimSpace(input.OptionFee),
		PaymentMethod:      strings.TrimSpace(input.PaymentMethod),
		Notes:              strings.TrimSpace(input.Notes),
		SubmittedAt:        &now,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert application")
	}

	result := &SubmitResult{Application: app, Saved: true}

	// Courtesy mails go out as soon as the row exists. Notified tracks
	// only the contract PDF delivery.
	confirm := notifications.ApplicantConfirmationMail(app.RepresentativeName)
	if err := s.notifier.Dispatch(ctx, confirm, contactEmail); err != nil {
		s.logError(ctx, app.ID, "applicant confirmation mail failed", err)
	}
	operator := notifications.OperatorNewApplicationMail(app.CompanyName, app.RepresentativeName, app.ContactName, app.ContactEmail)
	if err := s.notifier.Dispatch(ctx, operator, s.vendor.OperatorEmail); err != nil {
		s.logError(ctx, app.ID, "operator new application mail failed", err)
	}

	pdf, err := s.builder.Build(contractdoc.FromApplication(*app), now)
	if err != nil {
		s.logError(ctx, app.ID, "contract pdf build failed", err)
		return result, nil
	}

	msg := notifications.ContractPDFMail(base64.StdEncoding.EncodeToString(pdf))
	err = s.notifier.Dispatch(ctx, msg, s.vendor.OperatorEmail, contactEmail, signedInEmail)
	if err != nil {
		s.logError(ctx, app.ID, "contract pdf mail failed", err)
		return result, nil
	}

	result.Notified = true
	return result, nil
}

// SendContract moves the application under review and mails the signature
// request link. Calling it again from under_review re-sends the mail.
func (s *Service) SendContract(ctx context.Context, id uuid.UUID, email string) (*NotifyResult, error) {
	recipient := strings.TrimSpace(email)
	if recipient == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}

	app, err := s.repo.Transition(ctx, id, StatusTransition{
		To:   enums.ApplicationStatusUnderReview,
		From: []enums.ApplicationStatus{enums.ApplicationStatusSubmitted, enums.ApplicationStatusUnderReview},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "transition application")
	}
	if app == nil {
		return nil, s.transitionConflict(ctx, id, enums.ApplicationStatusUnderReview)
	}

	result := &NotifyResult{Application: app, Saved: true}

	msg := notifications.SignatureRequestMail(s.vendor.SignatureURL(id.String()))
	if err := s.notifier.Dispatch(ctx, msg, recipient); err != nil {
		s.logError(ctx, id, "signature request mail failed", err)
		return result, nil
	}

	result.Notified = true
	return result, nil
}

// Approve marks an application approved. Allowed from submitted or
// under_review; approved_at is stamped only on the first approval.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := s.repo.Transition(ctx, id, StatusTransition{
		To:              enums.ApplicationStatusApproved,
		From:            []enums.ApplicationStatus{enums.ApplicationStatusSubmitted, enums.ApplicationStatusUnderReview},
		StampApprovedAt: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve application")
	}
	if app == nil {
		return nil, s.transitionConflict(ctx, id, enums.ApplicationStatusApproved)
	}
	return app, nil
}

// Reject marks an application rejected from any non-rejected state.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := s.repo.Transition(ctx, id, StatusTransition{
		To: enums.ApplicationStatusRejected,
		From: []enums.ApplicationStatus{
			enums.ApplicationStatusDraft,
			enums.ApplicationStatusSubmitted,
			enums.ApplicationStatusUnderReview,
			enums.ApplicationStatusApproved,
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reject application")
	}
	if app == nil {
		return nil, s.transitionConflict(ctx, id, enums.ApplicationStatusRejected)
	}
	return app, nil
}

// Get fetches a single application by id, scoped to the viewer.
func (s *Service) Get(ctx context.Context, id uuid.UUID, viewer Viewer) (*models.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load application")
	}
	// A foreign row reads as missing so ids cannot be probed.
	if !viewer.CanAccess(app) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
	}
	return app, nil
}

// ListAll returns every application for the admin dashboard, newest first.
func (s *Service) ListAll(ctx context.Context, params ListParams) ([]models.Application, *pagination.Cursor, error) {
	return s.list(ctx, nil, params)
}

// ListByApplicant returns the signed-in user's own applications.
func (s *Service) ListByApplicant(ctx context.Context, applicantID uuid.UUID, params ListParams) ([]models.Application, *pagination.Cursor, error) {
	if applicantID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "applicant id is required")
	}
	return s.list(ctx, &applicantID, params)
}

func (s *Service) list(ctx context.Context, applicantID *uuid.UUID, params ListParams) ([]models.Application, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	apps, next, err := s.repo.List(ctx, ListQuery{
		ApplicantID: applicantID,
		Status:      params.Status,
		Limit:       params.Limit,
		Cursor:      cursor,
	})
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list applications")
	}
	return apps, next, nil
}

// transitionConflict distinguishes a missing row from a CAS loss.
func (s *Service) transitionConflict(ctx context.Context, id uuid.UUID, to enums.ApplicationStatus) error {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load application")
	}
	if app == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot move application from "+app.Status.String()+" to "+to.String())
}

func (s *Service) logError(ctx context.Context, id uuid.UUID, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(s.logg.WithApplicationID(ctx, id.String()), msg, err)
}

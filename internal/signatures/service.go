package signatures

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aquaplan/aquatutor-backend/internal/applications"
	"github.com/aquaplan/aquatutor-backend/internal/contractdoc"
	"github.com/aquaplan/aquatutor-backend/internal/notifications"
	"github.com/aquaplan/aquatutor-backend/pkg/config"
	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
	"github.com/google/uuid"
)

// ApplicationStore is the slice of the applications repository the
// signing flow needs: the guarded status move and the reload that
// explains a lost race.
type ApplicationStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	Transition(ctx context.Context, id uuid.UUID, t applications.StatusTransition) (*models.Application, error)
}

// Notifier fans a rendered mail out to its recipients.
type Notifier interface {
	Dispatch(ctx context.Context, msg notifications.Message, recipients ...string) error
}

// SaveResult reports the approved application, the stored signature and
// whether the operator mail went out.
type SaveResult struct {
	Application *models.Application
	Signature   *models.Signature
	Saved       bool
	Notified    bool
}

type ServiceParams struct {
	Repo         Repository
	Applications ApplicationStore
	Notifier     Notifier
	Vendor       config.VendorConfig
	Logger       *logger.Logger
}

type Service struct {
	repo     Repository
	apps     ApplicationStore
	notifier Notifier
	vendor   config.VendorConfig
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Applications == nil {
		return nil, errors.New("application store is required")
	}
	if params.Notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if params.Vendor.OperatorEmail == "" {
		return nil, errors.New("operator email is required")
	}
	return &Service{
		repo:     params.Repo,
		apps:     params.Applications,
		notifier: params.Notifier,
		vendor:   params.Vendor,
		logg:     params.Logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Save records a drawn signature against an application. Only the owning
// applicant or an admin may sign. The status move
// to approved is a guarded update: once an admin has rejected the row,
// the signing attempt loses the race and reports a state conflict
// instead of silently re-approving. The operator mail failing after the
// write is reported through the Notified flag, never rolled back.
func (s *Service) Save(ctx context.Context, applicationID uuid.UUID, dataURI, signedBy string, signer applications.Viewer) (*SaveResult, error) {
	signedBy = strings.TrimSpace(signedBy)
	if signedBy == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signed_by is required")
	}
	if err := contractdoc.ValidateSignatureImage(dataURI); err != nil {
		return nil, err
	}

	existing, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load application")
	}
	// A foreign row reads as missing so ids cannot be probed.
	if !signer.CanAccess(existing) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
	}

	app, err := s.apps.Transition(ctx, applicationID, applications.StatusTransition{
		To:              enums.ApplicationStatusApproved,
		From:            []enums.ApplicationStatus{enums.ApplicationStatusSubmitted, enums.ApplicationStatusUnderReview},
		StampApprovedAt: true,
		SignatureImage:  &dataURI,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve application on signing")
	}
	if app == nil {
		return nil, s.transitionConflict(ctx, applicationID)
	}

	now := s.now()
	signature := &models.Signature{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		SignatureData: dataURI,
		SignedBy:      signedBy,
		SignedAt:      now,
	}
	if err := s.repo.Create(ctx, signature); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store signature")
	}

	result := &SaveResult{Application: app, Signature: signature, Saved: true}

	msg := notifications.SignatureCompletedOperatorMail(app.CompanyName)
	if err := s.notifier.Dispatch(ctx, msg, s.vendor.OperatorEmail); err != nil {
		s.logError(ctx, applicationID, "signature completed mail failed", err)
		return result, nil
	}
	if err := s.repo.MarkEmailSent(ctx, signature.ID, s.now()); err != nil {
		s.logError(ctx, applicationID, "signature mail bookkeeping failed", err)
		return result, nil
	}

	result.Notified = true
	return result, nil
}

// Get loads the newest signature captured for an application.
func (s *Service) Get(ctx context.Context, applicationID uuid.UUID) (*models.Signature, error) {
	signature, err := s.repo.FindByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load signature")
	}
	if signature == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "signature not found")
	}
	return signature, nil
}

func (s *Service) transitionConflict(ctx context.Context, id uuid.UUID) error {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load application")
	}
	if app == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot sign application in status "+app.Status.String())
}

func (s *Service) logError(ctx context.Context, id uuid.UUID, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(s.logg.WithApplicationID(ctx, id.String()), msg, err)
}

package signatures

import (
	"context"
	"errors"
	"time"

	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists captured signatures and their mail bookkeeping.
type Repository interface {
	Create(ctx context.Context, signature *models.Signature) error
	FindByApplicationID(ctx context.Context, applicationID uuid.UUID) (*models.Signature, error)
	MarkEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, signature *models.Signature) error {
	return r.db.WithContext(ctx).Create(signature).Error
}

func (r *repository) FindByApplicationID(ctx context.Context, applicationID uuid.UUID) (*models.Signature, error) {
	var signature models.Signature
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("signed_at DESC").
		First(&signature).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &signature, nil
}

func (r *repository) MarkEmailSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Signature{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"email_sent":    true,
			"email_sent_at": at,
		}).Error
}

package inquiries

import (
	"context"

	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists contact-form inquiries. Rows are insert-only.
type Repository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	List(ctx context.Context, limit int) ([]models.Inquiry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *repository) List(ctx context.Context, limit int) ([]models.Inquiry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var rows []models.Inquiry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

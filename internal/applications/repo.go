package applications

import (
	"context"
	"time"

	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	"github.com/aquaplan/aquatutor-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusTransition describes a guarded lifecycle move. From lists the states
// the row must currently be in for the update to land.
type StatusTransition struct {
	To              enums.ApplicationStatus
	From            []enums.ApplicationStatus
	StampApprovedAt bool
	SignatureImage  *string
}

// Repository handles application persistence.
type Repository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context, query ListQuery) ([]models.Application, *pagination.Cursor, error)
	Transition(ctx context.Context, id uuid.UUID, t StatusTransition) (*models.Application, error)
	ActiveTemplate(ctx context.Context) (*models.ContractTemplate, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an application repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&app).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Application, *pagination.Cursor, error) {
	limit := pagination.NormalizeLimit(query.Limit)

	q := r.db.WithContext(ctx).Model(&models.Application{})
	if query.ApplicantID != nil {
		q = q.Where("applicant_id = ?", *query.ApplicantID)
	}
	if query.Status != nil {
		q = q.Where("status = ?", *query.Status)
	}
	if query.Cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			query.Cursor.CreatedAt, query.Cursor.CreatedAt, query.Cursor.ID,
		)
	}

	var apps []models.Application
	if err := q.Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&apps).Error; err != nil {
		return nil, nil, err
	}

	var next *pagination.Cursor
	if len(apps) > limit {
		apps = apps[:limit]
		last := apps[len(apps)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return apps, next, nil
}

// ActiveTemplate returns the newest active contract template, or nil when
// none is configured.
func (r *repository) ActiveTemplate(ctx context.Context) (*models.ContractTemplate, error) {
	var tmpl models.ContractTemplate
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&tmpl).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &tmpl, nil
}

// Transition applies a compare-and-set status update. It returns nil when the
// row exists but was not in one of the expected source states, so concurrent
// writers lose deterministically instead of overwriting each other.
func (r *repository) Transition(ctx context.Context, id uuid.UUID, t StatusTransition) (*models.Application, error) {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":     t.To,
		"version":    gorm.Expr("version + 1"),
		"updated_at": now,
	}
	if t.StampApprovedAt {
		updates["approved_at"] = gorm.Expr("COALESCE(approved_at, ?)", now)
	}
	if t.SignatureImage != nil {
		updates["signature_image"] = *t.SignatureImage
	}

	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status IN ?", id, t.From).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

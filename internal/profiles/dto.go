package profiles

import (
	"time"

	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ProfileDTO is the account shape returned to clients. The password
// hash never leaves the repository layer.
type ProfileDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    *string    `json:"full_name,omitempty"`
	Company     *string    `json:"company,omitempty"`
	Position    *string    `json:"position,omitempty"`
	IsAdmin     bool       `json:"is_admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromModel maps a persisted profile to its client-facing shape.
func FromModel(profile *models.Profile) *ProfileDTO {
	if profile == nil {
		return nil
	}
	return &ProfileDTO{
		ID:          profile.ID,
		Email:       profile.Email,
		FullName:    profile.FullName,
		Company:     profile.Company,
		Position:    profile.Position,
		IsAdmin:     profile.IsAdmin,
		LastLoginAt: profile.LastLoginAt,
		CreatedAt:   profile.CreatedAt,
	}
}

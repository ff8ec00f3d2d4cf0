package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ContractTemplate is a named fee/terms template an application may reference.
// The application wizard currently collects fees ad hoc, so the reference is
// optional.
type ContractTemplate struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	Description   *string        `gorm:"column:description" json:"description,omitempty"`
	Terms         string         `gorm:"column:terms;not null" json:"terms"`
	Amount        int64          `gorm:"column:amount;not null;default:0" json:"amount"`
	TrainingItems pq.StringArray `gorm:"column:training_items;type:text[]" json:"training_items"`
	ManualCount   int            `gorm:"column:manual_count;not null;default:0" json:"manual_count"`
	SpecialNotes  *string        `gorm:"column:special_notes" json:"special_notes,omitempty"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

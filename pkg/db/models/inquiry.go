package models

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a standalone contact-form submission. Rows are insert-only.
// Type holds the comma-joined tag list as submitted (e.g.
// "document_request,demo_request").
type Inquiry struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type               string    `gorm:"column:type;not null" json:"type"`
	CompanyName        string    `gorm:"column:company_name;not null" json:"company_name"`
	RepresentativeName string    `gorm:"column:representative_name;not null" json:"representative_name"`
	Email              string    `gorm:"column:email;not null" json:"email"`
	Phone              string    `gorm:"column:phone" json:"phone"`
	Message            string    `gorm:"column:message;not null" json:"message"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

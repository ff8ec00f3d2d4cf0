package models

import (
	"time"

	"github.com/google/uuid"
)

// Signature records one signing event against an application, including
// whether the notification mail went out afterwards.
type Signature struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ApplicationID uuid.UUID  `gorm:"column:application_id;type:uuid;not null" json:"application_id"`
	SignatureData string     `gorm:"column:signature_data;not null" json:"signature_data"`
	SignedBy      string     `gorm:"column:signed_by;not null" json:"signed_by"`
	SignedAt      time.Time  `gorm:"column:signed_at;not null" json:"signed_at"`
	EmailSent     bool       `gorm:"column:email_sent;not null;default:false" json:"email_sent"`
	EmailSentAt   *time.Time `gorm:"column:email_sent_at" json:"email_sent_at,omitempty"`
	PDFURL        *string    `gorm:"column:pdf_url" json:"pdf_url,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

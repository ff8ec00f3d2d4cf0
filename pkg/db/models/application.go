package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/aquaplan/aquatutor-backend/pkg/enums"
)

// Application is the central e-contract entity. Fee columns are stored as the
// free-text values the form collected; they are validated as non-negative
// decimals before any total is computed.
type Application struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContractID *uuid.UUID `gorm:"column:contract_id;type:uuid" json:"contract_id,omitempty"`

	ApplicantID uuid.UUID  `gorm:"column:applicant_id;type:uuid;not null" json:"applicant_id"`
	SalesRepID  *uuid.UUID `gorm:"column:sales_rep_id;type:uuid" json:"sales_rep_id,omitempty"`

	Status enums.ApplicationStatus `gorm:"column:status;type:application_status;not null;default:'submitted'" json:"status"`

	CompanyName    string `gorm:"column:company_name;not null" json:"company_name"`
	PostalCode     string `gorm:"column:postal_code" json:"postal_code"`
	Prefecture     string `gorm:"column:prefecture" json:"prefecture"`
	City           string `gorm:"column:city" json:"city"`
	SubArea        string `gorm:"column:sub_area" json:"sub_area"`
	BuildingRoom   string `gorm:"column:building_room" json:"building_room"`
	CompanyAddress string `gorm:"column:company_address;not null" json:"company_address"`

	RepresentativeName string `gorm:"column:representative_name;not null" json:"representative_name"`
	ContactName        string `gorm:"column:contact_name;not null" json:"contact_name"`
	PhoneNumber        string `gorm:"column:phone_number;not null" json:"phone_number"`
	// ContactEmail is the canonical correspondence address, always lower-cased.
	ContactEmail string `gorm:"column:contact_email;not null" json:"contact_email"`

	InitialFee    string `gorm:"column:initial_fee;not null" json:"initial_fee"`
	MonthlyFee    string `gorm:"column:monthly_fee;not null" json:"monthly_fee"`
	ExcessFee     string `gorm:"column:excess_fee;not null" json:"excess_fee"`
	OptionFee     string `gorm:"column:option_fee;not null" json:"option_fee"`
	PaymentMethod string `gorm:"column:payment_method" json:"payment_method"`
	Notes         string `gorm:"column:notes" json:"notes"`

	// SignatureImage holds the customer's signature raster as a PNG data URI.
	SignatureImage *string `gorm:"column:signature_image" json:"signature_image,omitempty"`

	// Version guards status transitions against concurrent writers.
	Version int64 `gorm:"column:version;not null;default:0" json:"version"`

	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
}

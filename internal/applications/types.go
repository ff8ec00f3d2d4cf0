package applications

import (
	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	"github.com/aquaplan/aquatutor-backend/pkg/pagination"
	"github.com/google/uuid"
)

// SubmitInput is the full application form plus the signed-in identity.
type SubmitInput struct {
	SignedInEmail      string
	CompanyName        string
	PostalCode         string
	Prefecture         string
	City               string
	SubArea            string
	BuildingRoom       string
	RepresentativeName string
	ContactName        string
	ContactPhone       string
	ContactEmail       string
	InitialFee         string
	MonthlyFee         string
	ExcessFee          string
	OptionFee          string
	PaymentMethod      string
	Notes              string
}

// SubmitResult reports the persisted row and the independent step outcomes.
type SubmitResult struct {
	Application *models.Application
	Saved       bool
	Notified    bool
}

// NotifyResult reports a state change whose follow-up mail may have failed.
type NotifyResult struct {
	Application *models.Application
	Saved       bool
	Notified    bool
}

// ListParams configures admin and applicant list queries.
type ListParams struct {
	Status *enums.ApplicationStatus
	Limit  int
	Cursor string
}

// ListQuery is the repository-level variant with a decoded cursor.
type ListQuery struct {
	ApplicantID *uuid.UUID
	Status      *enums.ApplicationStatus
	Limit       int
	Cursor      *pagination.Cursor
}

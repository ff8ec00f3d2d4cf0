// Package applyform holds an in-progress application across the two
// wizard screens. The form is the true draft: nothing is persisted
// until Complete hands a finished payload to the submission service.
package applyform

import (
	"fmt"
	"strings"

	"github.com/aquaplan/aquatutor-backend/internal/applications"
	"github.com/aquaplan/aquatutor-backend/internal/contractdoc"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
)

// Step identifies which wizard screen the form is on.
type Step string

const (
	StepFees    Step = "fees"
	StepCompany Step = "company"
)

// FeesInput is the first screen: the fee schedule.
type FeesInput struct {
	InitialFee    string
	MonthlyFee    string
	ExcessFee     string
	OptionFee     string
	PaymentMethod string
}

// CompanyInput is the second screen: company and contact identity.
type CompanyInput struct {
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
	Notes              string
}

// Form is the two-step wizard state machine. Zero value starts on the
// fees screen.
type Form struct {
	step    Step
	Fees    FeesInput
	Company CompanyInput
}

func New() *Form {
	return &Form{step: StepFees}
}

func (f *Form) Step() Step {
	if f.step == "" {
		return StepFees
	}
	return f.step
}

// Next validates the current screen and advances to the company screen.
// Calling Next on the final screen revalidates it and stays put.
func (f *Form) Next() error {
	switch f.Step() {
	case StepFees:
		if err := f.validateFees(); err != nil {
			return err
		}
		f.step = StepCompany
		return nil
	default:
		return f.validateCompany()
	}
}

// Back returns to the fees screen. Entered values are kept on both
// screens so the customer never retypes anything.
func (f *Form) Back() error {
	if f.Step() != StepCompany {
		return pkgerrors.New(pkgerrors.CodeValidation, "already on the first step")
	}
	f.step = StepFees
	return nil
}

// Complete normalizes the whole form and returns the submission payload.
// Both screens must validate; the wizard must be on the final screen.
func (f *Form) Complete(signedInEmail string) (applications.SubmitInput, error) {
	if f.Step() != StepCompany {
		return applications.SubmitInput{}, pkgerrors.New(pkgerrors.CodeValidation, "form has not reached the final step")
	}
	f.normalize()
	if err := f.validateFees(); err != nil {
		return applications.SubmitInput{}, err
	}
	if err := f.validateCompany(); err != nil {
		return applications.SubmitInput{}, err
	}

	return applications.SubmitInput{
		SignedInEmail:      strings.TrimSpace(signedInEmail),
		CompanyName:        f.Company.CompanyName,
		PostalCode:         f.Company.PostalCode,
		Prefecture:         f.Company.Prefecture,
		City:               f.Company.City,
		SubArea:            f.Company.SubArea,
		BuildingRoom:       f.Company.BuildingRoom,
		RepresentativeName: f.Company.RepresentativeName,
		ContactName:        f.Company.ContactName,
		ContactPhone:       f.Company.ContactPhone,
		ContactEmail:       f.Company.ContactEmail,
		InitialFee:         f.Fees.InitialFee,
		MonthlyFee:         f.Fees.MonthlyFee,
		ExcessFee:          f.Fees.ExcessFee,
		OptionFee:          f.Fees.OptionFee,
		PaymentMethod:      f.Fees.PaymentMethod,
		Notes:              f.Company.Notes,
	}, nil
}

func (f *Form) validateFees() error {
	f.Fees.normalize()
	return contractdoc.ValidateFees(f.Fees.InitialFee, f.Fees.MonthlyFee, f.Fees.ExcessFee, f.Fees.OptionFee)
}

func (f *Form) validateCompany() error {
	f.Company.normalize()
	required := []struct {
		field string
		value string
	}{
		{"company_name", f.Company.CompanyName},
		{"prefecture", f.Company.Prefecture},
		{"city", f.Company.City},
		{"sub_area", f.Company.SubArea},
		{"representative_name", f.Company.RepresentativeName},
		{"contact_name", f.Company.ContactName},
		{"contact_phone", f.Company.ContactPhone},
		{"contact_email", f.Company.ContactEmail},
	}
	for _, r := range required {
		if r.value == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is required", r.field))
		}
	}
	if !strings.Contains(f.Company.ContactEmail, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact_email is not a valid address")
	}
	return nil
}

func (f *Form) normalize() {
	f.Fees.normalize()
	f.Company.normalize()
}

func (i *FeesInput) normalize() {
	i.InitialFee = strings.TrimSpace(i.InitialFee)
	i.MonthlyFee = strings.TrimSpace(i.MonthlyFee)
	i.ExcessFee = strings.TrimSpace(i.ExcessFee)
	i.OptionFee = strings.TrimSpace(i.OptionFee)
	i.PaymentMethod = strings.TrimSpace(i.PaymentMethod)
}

func (i *CompanyInput) normalize() {
	i.CompanyName = strings.TrimSpace(i.CompanyName)
	i.PostalCode = strings.TrimSpace(i.PostalCode)
	i.Prefecture = strings.TrimSpace(i.Prefecture)
	i.City = strings.TrimSpace(i.City)
	i.SubArea = strings.TrimSpace(i.SubArea)
	i.BuildingRoom = strings.TrimSpace(i.BuildingRoom)
	i.RepresentativeName = strings.TrimSpace(i.RepresentativeName)
	i.ContactName = strings.TrimSpace(i.ContactName)
	i.ContactPhone = strings.TrimSpace(i.ContactPhone)
	i.ContactEmail = strings.ToLower(strings.TrimSpace(i.ContactEmail))
	i.Notes = strings.TrimSpace(i.Notes)
}

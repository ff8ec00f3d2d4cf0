package contractdoc

import (
	"strings"

	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
)

// Document is the canonical input for contract rendering. Both the persisted
// application shape and the in-flight form shape normalize into it before any
// layout code runs.
type Document struct {
	CompanyName        string
	CompanyAddress     string
	RepresentativeName string
	ContactName        string
	PhoneNumber        string
	ContactEmail       string
	InitialFee         string
	MonthlyFee         string
	ExcessFee          string
	OptionFee          string
	PaymentMethod      string
	Notes              string
	SignatureImage     string
}

// Input carries the fields of either source shape. The precomposed address and
// db-style phone/email names win when both variants are present.
type Input struct {
	CompanyName        string
	CompanyAddress     string
	Prefecture         string
	City               string
	SubArea            string
	BuildingRoom       string
	RepresentativeName string
	ContactName        string
	Phone              string
	PhoneNumber        string
	Email              string
	ContactEmail       string
	InitialFee         string
	MonthlyFee         string
	ExcessFee          string
	OptionFee          string
	PaymentMethod      string
	Notes              string
	SignatureImage     string
}

// Normalize maps an Input onto the canonical Document.
func Normalize(in Input) Document {
	address := strings.TrimSpace(in.CompanyAddress)
	if address == "" {
		address = strings.TrimSpace(in.Prefecture + in.City + in.SubArea + in.BuildingRoom)
	}

	phone := strings.TrimSpace(in.PhoneNumber)
	if phone == "" {
		phone = strings.TrimSpace(in.Phone)
	}

	email := strings.TrimSpace(in.ContactEmail)
	if email == "" {
		email = strings.TrimSpace(in.Email)
	}

	return Document{
		CompanyName:        strings.TrimSpace(in.CompanyName),
		CompanyAddress:     address,
		RepresentativeName: strings.TrimSpace(in.RepresentativeName),
		ContactName:        strings.TrimSpace(in.ContactName),
		PhoneNumber:        phone,
		ContactEmail:       strings.ToLower(email),
		InitialFee:         strings.TrimSpace(in.InitialFee),
		MonthlyFee:         strings.TrimSpace(in.MonthlyFee),
		ExcessFee:          strings.TrimSpace(in.ExcessFee),
		OptionFee:          strings.TrimSpace(in.OptionFee),
		PaymentMethod:      strings.TrimSpace(in.PaymentMethod),
		Notes:              strings.TrimSpace(in.Notes),
		SignatureImage:     strings.TrimSpace(in.SignatureImage),
	}
}

// FromApplication adapts a persisted application row.
func FromApplication(app models.Application) Document {
	signature := ""
	if app.SignatureImage != nil {
		signature = *app.SignatureImage
	}
	return Normalize(Input{
		CompanyName:        app.CompanyName,
		CompanyAddress:     app.CompanyAddress,
		Prefecture:         app.Prefecture,
		City:               app.City,
		SubArea:            app.SubArea,
		BuildingRoom:       app.BuildingRoom,
		RepresentativeName: app.RepresentativeName,
		ContactName:        app.ContactName,
		PhoneNumber:        app.PhoneNumber,
		ContactEmail:       app.ContactEmail,
		InitialFee:         app.InitialFee,
		MonthlyFee:         app.MonthlyFee,
		ExcessFee:          app.ExcessFee,
		OptionFee:          app.OptionFee,
		PaymentMethod:      app.PaymentMethod,
		Notes:              app.Notes,
		SignatureImage:     signature,
	})
}

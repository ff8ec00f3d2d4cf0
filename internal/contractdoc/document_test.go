package contractdoc

import (
	"testing"

	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
)

func TestNormalizePrefersPrecomposedAddress(t *testing.T) {
	doc := Normalize(Input{
		CompanyName:    "株式会社テスト",
		CompanyAddress: "大阪府大阪市北区梅田1-1-1",
		Prefecture:     "東京都",
		City:           "千代田区",
		SubArea:        "丸の内1-1",
	})
	if doc.CompanyAddress != "大阪府大阪市北区梅田1-1-1" {
		t.Fatalf("expected precomposed address, got %q", doc.CompanyAddress)
	}
}

func TestNormalizeComposesAddressFromParts(t *testing.T) {
	doc := Normalize(Input{
		Prefecture:   "東京都",
		City:         "千代田区",
		SubArea:      "丸の内1-1",
		BuildingRoom: "ビル5階",
	})
	if doc.CompanyAddress != "東京都千代田区丸の内1-1ビル5階" {
		t.Fatalf("unexpected composed address %q", doc.CompanyAddress)
	}
}

func TestNormalizeDualFieldFallbacks(t *testing.T) {
	doc := Normalize(Input{
		Phone: "06-1234-5678",
		Email: "Keiri@Example.JP",
	})
	if doc.PhoneNumber != "06-1234-5678" {
		t.Fatalf("expected form phone fallback, got %q", doc.PhoneNumber)
	}
	if doc.ContactEmail != "keiri@example.jp" {
		t.Fatalf("expected lower-cased email, got %q", doc.ContactEmail)
	}

	doc = Normalize(Input{
		Phone:        "06-1234-5678",
		PhoneNumber:  "03-9999-0000",
		Email:        "form@example.jp",
		ContactEmail: "db@example.jp",
	})
	if doc.PhoneNumber != "03-9999-0000" {
		t.Fatalf("db phone should win, got %q", doc.PhoneNumber)
	}
	if doc.ContactEmail != "db@example.jp" {
		t.Fatalf("db email should win, got %q", doc.ContactEmail)
	}
}

func TestFromApplication(t *testing.T) {
	sig := "data:image/png;base64,iVBORw0KGgo="
	app := models.Application{
		CompanyName:    "  株式会社テスト  ",
		CompanyAddress: "",
		Prefecture:     "大阪府",
		City:           "大阪市淀川区",
		SubArea:        "西中島3-8-2",
		ContactEmail:   "TANAKA@example.jp",
		PhoneNumber:    "06-1111-2222",
		InitialFee:     "500000",
		MonthlyFee:     "100000",
		ExcessFee:      "5000",
		OptionFee:      "20000",
		SignatureImage: &sig,
	}
	doc := FromApplication(app)
	if doc.CompanyName != "株式会社テスト" {
		t.Fatalf("expected trimmed company name, got %q", doc.CompanyName)
	}
	if doc.CompanyAddress != "大阪府大阪市淀川区西中島3-8-2" {
		t.Fatalf("unexpected address %q", doc.CompanyAddress)
	}
	if doc.ContactEmail != "tanaka@example.jp" {
		t.Fatalf("expected lower-cased email, got %q", doc.ContactEmail)
	}
	if doc.SignatureImage != sig {
		t.Fatalf("signature image not carried over")
	}
}

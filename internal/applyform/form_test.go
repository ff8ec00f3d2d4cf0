package applyform

import (
	"testing"

	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
)

func validFees() FeesInput {
	return FeesInput{
		InitialFee:    "500000",
		MonthlyFee:    "100000",
		ExcessFee:     "5000",
		OptionFee:     "20000",
		PaymentMethod: "銀行振込",
	}
}

func validCompany() CompanyInput {
	return CompanyInput{
		CompanyName:        "株式会社テスト",
		Prefecture:         "東京都",
		City:               "千代田区",
		SubArea:            "丸の内1-1",
		BuildingRoom:       "ビル5階",
		RepresentativeName: "山田 太郎",
		ContactName:        "佐藤 花子",
		ContactPhone:       "03-1234-5678",
		ContactEmail:       "Keiri@Example.JP",
	}
}

func TestFormStartsOnFeesStep(t *testing.T) {
	form := New()
	if form.Step() != StepFees {
		t.Fatalf("expected fees step, got %s", form.Step())
	}
	if err := form.Back(); err == nil {
		t.Fatal("expected back to fail on the first step")
	}
}

func TestNextValidatesFees(t *testing.T) {
	form := New()
	form.Fees = validFees()
	form.Fees.MonthlyFee = "ten thousand"

	err := form.Next()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if form.Step() != StepFees {
		t.Fatal("form advanced despite invalid fees")
	}

	form.Fees.MonthlyFee = "100000"
	if err := form.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if form.Step() != StepCompany {
		t.Fatalf("expected company step, got %s", form.Step())
	}
}

func TestBackPreservesValues(t *testing.T) {
	form := New()
	form.Fees = validFees()
	if err := form.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	form.Company = validCompany()

	if err := form.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if form.Step() != StepFees {
		t.Fatalf("expected fees step after back, got %s", form.Step())
	}
	if form.Fees.InitialFee != "500000" {
		t.Fatal("fees lost on back navigation")
	}
	if form.Company.CompanyName != "株式会社テスト" {
		t.Fatal("company values lost on back navigation")
	}
}

func TestCompleteRequiresFinalStep(t *testing.T) {
	form := New()
	form.Fees = validFees()
	form.Company = validCompany()

	_, err := form.Complete("tanaka@example.jp")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error before final step, got %v", err)
	}
}

func TestCompleteNormalizesAndBuildsPayload(t *testing.T) {
	form := New()
	form.Fees = validFees()
	form.Fees.InitialFee = " 500000 "
	if err := form.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	form.Company = validCompany()
	form.Company.CompanyName = "  株式会社テスト  "

	input, err := form.Complete("tanaka@example.jp")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if input.CompanyName != "株式会社テスト" {
		t.Fatalf("company name not trimmed: %q", input.CompanyName)
	}
	if input.InitialFee != "500000" {
		t.Fatalf("fee not trimmed: %q", input.InitialFee)
	}
	if input.ContactEmail != "keiri@example.jp" {
		t.Fatalf("contact email not lower-cased: %q", input.ContactEmail)
	}
	if input.SignedInEmail != "tanaka@example.jp" {
		t.Fatalf("unexpected signed-in email %q", input.SignedInEmail)
	}
}

func TestCompleteRejectsMissingRequiredField(t *testing.T) {
	form := New()
	form.Fees = validFees()
	if err := form.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	form.Company = validCompany()
	form.Company.RepresentativeName = "   "

	_, err := form.Complete("tanaka@example.jp")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

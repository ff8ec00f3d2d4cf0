package contractdoc

import (
	"strings"

	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const contractMonths = 12

// ParseFee parses a fee string into a non-negative decimal amount.
func ParseFee(field, raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, field+" must be a number")
	}
	if amount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, field+" cannot be negative")
	}
	return amount, nil
}

// ValidateFees parses all four fee fields, rejecting any non-numeric or
// negative value before a document or application row is produced.
func ValidateFees(initialFee, monthlyFee, excessFee, optionFee string) error {
	fields := []struct {
		name string
		raw  string
	}{
		{"initial_fee", initialFee},
		{"monthly_fee", monthlyFee},
		{"excess_fee", excessFee},
		{"option_fee", optionFee},
	}
	for _, f := range fields {
		if _, err := ParseFee(f.name, f.raw); err != nil {
			return err
		}
	}
	return nil
}

// ComputeTotal returns the first-year contract amount:
// initial + monthly*12 + option. The excess fee is usage-based and excluded.
func ComputeTotal(initialFee, monthlyFee, optionFee string) (decimal.Decimal, error) {
	initial, err := ParseFee("initial_fee", initialFee)
	if err != nil {
		return decimal.Zero, err
	}
	monthly, err := ParseFee("monthly_fee", monthlyFee)
	if err != nil {
		return decimal.Zero, err
	}
	option, err := ParseFee("option_fee", optionFee)
	if err != nil {
		return decimal.Zero, err
	}
	return initial.Add(monthly.Mul(decimal.NewFromInt(contractMonths))).Add(option), nil
}

// FormatAmount renders a yen amount with thousands separators and the 円 suffix.
func FormatAmount(amount decimal.Decimal) string {
	return groupDigits(amount.Round(0).String()) + "円"
}

func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

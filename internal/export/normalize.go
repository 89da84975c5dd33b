package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeDate converts a DD/MM/YY date to ISO YYYY-MM-DD form.
// Two-digit years 70-99 resolve to 19xx, 00-69 to 20xx. The pivot is fixed
// and does not depend on the current date. Day and month ranges are not
// validated; the portal is trusted to emit calendar dates.
func NormalizeDate(s string) (string, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("date %q: expected DD/MM/YY", s)
	}
	for _, p := range parts {
		if len(p) != 2 || !allDigits(p) {
			return "", fmt.Errorf("date %q: expected DD/MM/YY", s)
		}
	}
	yy := int(parts[2][0]-'0')*10 + int(parts[2][1]-'0')
	year := 2000 + yy
	if yy >= 70 {
		year = 1900 + yy
	}
	return fmt.Sprintf("%d-%s-%s", year, parts[1], parts[0]), nil
}

// NormalizeAmount parses a comma-decimal amount ("1234,56", "-12,00") into
// a decimal. Thousands separators are not handled; the export never emits
// them.
func NormalizeAmount(s string) (decimal.Decimal, error) {
	if strings.Count(s, ",") != 1 {
		return decimal.Decimal{}, fmt.Errorf("amount %q: expected exactly one decimal comma", s)
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q: %w", s, err)
	}
	return d, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

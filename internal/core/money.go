// Package core holds the domain model, validators and money helpers for the
// expense tracker. Monetary amounts are integers in minor units throughout.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToMinor converts a decimal amount string to minor units with
// half-up rounding on the third decimal place. Both dot and comma separators
// are accepted. The result must be a positive amount.
//
// Examples:
//
//	ParseDecimalToMinor("12.34") -> 1234
//	ParseDecimalToMinor("12,34") -> 1234
//	ParseDecimalToMinor("12.346") -> 1235
func ParseDecimalToMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, NewValidationError(msgAmountPositive)
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, NewValidationError(msgAmountPositive)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, NewValidationError(msgAmountPositive)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, NewValidationError(msgAmountPositive)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, NewValidationError(msgAmountPositive)
	}
	// Guard the *100 below.
	const maxSafe = math.MaxInt64 / 100
	if iv > maxSafe {
		return 0, NewValidationError(msgAmountPositive)
	}
	var fracMinor int64
	if len(fracPart) > 0 {
		fracMinor = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracMinor += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracMinor++
			}
		}
	}
	minor := iv*100 + fracMinor
	if minor <= 0 {
		return 0, NewValidationError(msgAmountPositive)
	}
	return minor, nil
}

// AmountMinorFromNumber converts a JSON number into minor units, rejecting
// fractional values. Positivity is checked by the expense validator, not here.
func AmountMinorFromNumber(v float64) (int64, error) {
	if v != math.Trunc(v) {
		return 0, NewValidationError(msgAmountInteger)
	}
	return int64(v), nil
}

// MajorUnits returns the amount as a float for display and export only.
// Calculations stay in minor units.
func MajorUnits(amountMinor int64) float64 {
	return float64(amountMinor) / 100.0
}

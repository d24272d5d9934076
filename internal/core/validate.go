package core

import (
	"strings"
	"time"
)

const (
	msgAmountPositive = "Amount must be greater than zero."
	msgAmountInteger  = "Amount must be an integer minor unit."
	msgCategoryNeeded = "Category is required."
	msgDateNeeded     = "Date is required."
	msgNameNeeded     = "Category name is required."
)

// ExpenseInput is a candidate expense for validation. Nil fields are absent;
// in partial mode absent fields are skipped instead of rejected.
type ExpenseInput struct {
	AmountMinor *int64
	CategoryID  *string
	OccurredAt  *time.Time
}

// ExpenseFieldErrors maps failed fields to user-facing messages. The zero
// value means the input is valid.
type ExpenseFieldErrors struct {
	Amount   string
	Category string
	Date     string
}

func (e ExpenseFieldErrors) Empty() bool {
	return e == ExpenseFieldErrors{}
}

// First returns the first message in the fixed order amount, category, date.
func (e ExpenseFieldErrors) First() string {
	switch {
	case e.Amount != "":
		return e.Amount
	case e.Category != "":
		return e.Category
	default:
		return e.Date
	}
}

// ValidateOptions controls which fields ValidateExpenseInput checks.
type ValidateOptions struct {
	// RequireAll validates every field, treating absence as an error.
	// Off, only fields present on the input are checked (partial updates).
	RequireAll bool
}

// ValidateExpenseInput checks amount, category reference and date without
// side effects. Safe to call repeatedly with the same input.
func ValidateExpenseInput(in ExpenseInput, opts ValidateOptions) ExpenseFieldErrors {
	var errs ExpenseFieldErrors

	if opts.RequireAll || in.AmountMinor != nil {
		if in.AmountMinor == nil || *in.AmountMinor <= 0 {
			errs.Amount = msgAmountPositive
		}
	}

	if opts.RequireAll || in.CategoryID != nil {
		if in.CategoryID == nil || strings.TrimSpace(*in.CategoryID) == "" {
			errs.Category = msgCategoryNeeded
		}
	}

	if opts.RequireAll || in.OccurredAt != nil {
		if in.OccurredAt == nil || in.OccurredAt.IsZero() {
			errs.Date = msgDateNeeded
		}
	}

	return errs
}

// AssertExpenseInput validates and returns the first failure as a
// ValidationError, or nil when the input passes.
func AssertExpenseInput(in ExpenseInput, opts ValidateOptions) error {
	errs := ValidateExpenseInput(in, opts)
	if errs.Empty() {
		return nil
	}
	return NewValidationError(errs.First())
}

// NormalizeCategoryName lowercases and trims a name for uniqueness
// comparison. Stored names keep their original casing.
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateCategoryName rejects missing or whitespace-only names.
func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError(msgNameNeeded)
	}
	return nil
}

// IsCategoryNameUnique compares name case-insensitively against existing
// names and reports whether it collides with none of them.
func IsCategoryNameUnique(name string, existing []string) bool {
	normalized := NormalizeCategoryName(name)
	for _, e := range existing {
		if NormalizeCategoryName(e) == normalized {
			return false
		}
	}
	return true
}

package core

import (
	"errors"
	"time"
)

type (
	// Category groups expenses for pickers and insights. Archived categories
	// stay referenced by historical expenses but are hidden from pickers.
	Category struct {
		ID         string
		Name       string
		Icon       string
		ColorToken string
		SortOrder  int
		IsArchived bool
		CreatedAt  time.Time
		UpdatedAt  time.Time
		DeletedAt  *time.Time
	}

	// Expense is a single spend record. AmountMinor is in minor currency
	// units (cents); money never touches floating point.
	Expense struct {
		ID            string
		AmountMinor   int64
		Currency      string
		CategoryID    string
		OccurredAt    time.Time
		Note          string
		Merchant      string
		PaymentMethod string
		CreatedAt     time.Time
		UpdatedAt     time.Time
		DeletedAt     *time.Time
	}

	// ExpenseWithCategory is the read model for listings: the expense joined
	// with its category's display metadata. Category fields are empty when
	// the category row is gone.
	ExpenseWithCategory struct {
		Expense
		CategoryName       string
		CategoryIcon       string
		CategoryColorToken string
	}
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("category name must be unique")
)

// ValidationError carries a user-facing message for input rejected before any
// write. The HTTP layer maps it to 422; storage errors stay generic.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a validation failure with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

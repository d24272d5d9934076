package core

import (
	"testing"
	"time"
)

func ptrI64(v int64) *int64          { return &v }
func ptrStr(v string) *string        { return &v }
func ptrTime(v time.Time) *time.Time { return &v }

func TestValidateExpenseInputRequireAll(t *testing.T) {
	now := time.Now()

	good := ExpenseInput{
		AmountMinor: ptrI64(500),
		CategoryID:  ptrStr("cat-1"),
		OccurredAt:  ptrTime(now),
	}
	if errs := ValidateExpenseInput(good, ValidateOptions{RequireAll: true}); !errs.Empty() {
		t.Fatalf("expected valid input, got %+v", errs)
	}

	cases := []struct {
		name  string
		in    ExpenseInput
		field string
	}{
		{"missing amount", ExpenseInput{CategoryID: ptrStr("c"), OccurredAt: ptrTime(now)}, "amount"},
		{"zero amount", ExpenseInput{AmountMinor: ptrI64(0), CategoryID: ptrStr("c"), OccurredAt: ptrTime(now)}, "amount"},
		{"negative amount", ExpenseInput{AmountMinor: ptrI64(-100), CategoryID: ptrStr("c"), OccurredAt: ptrTime(now)}, "amount"},
		{"missing category", ExpenseInput{AmountMinor: ptrI64(1), OccurredAt: ptrTime(now)}, "category"},
		{"blank category", ExpenseInput{AmountMinor: ptrI64(1), CategoryID: ptrStr("   "), OccurredAt: ptrTime(now)}, "category"},
		{"missing date", ExpenseInput{AmountMinor: ptrI64(1), CategoryID: ptrStr("c")}, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateExpenseInput(tc.in, ValidateOptions{RequireAll: true})
			switch tc.field {
			case "amount":
				if errs.Amount == "" {
					t.Fatalf("expected amount error, got %+v", errs)
				}
			case "category":
				if errs.Category == "" {
					t.Fatalf("expected category error, got %+v", errs)
				}
			case "date":
				if errs.Date == "" {
					t.Fatalf("expected date error, got %+v", errs)
				}
			}
		})
	}
}

func TestValidateExpenseInputPartial(t *testing.T) {
	// Absent fields are skipped when RequireAll is off.
	if errs := ValidateExpenseInput(ExpenseInput{}, ValidateOptions{}); !errs.Empty() {
		t.Fatalf("empty partial input should pass, got %+v", errs)
	}

	// Present fields are still checked.
	errs := ValidateExpenseInput(ExpenseInput{AmountMinor: ptrI64(0)}, ValidateOptions{})
	if errs.Amount == "" {
		t.Fatalf("expected amount error for present zero amount")
	}
	if errs.Category != "" || errs.Date != "" {
		t.Fatalf("absent fields should not fail in partial mode: %+v", errs)
	}
}

func TestAssertExpenseInputOrder(t *testing.T) {
	// All three fields fail; amount wins.
	err := AssertExpenseInput(ExpenseInput{}, ValidateOptions{RequireAll: true})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if err.Error() != msgAmountPositive {
		t.Fatalf("expected amount message first, got %q", err.Error())
	}

	// Amount fine, category and date fail; category wins.
	err = AssertExpenseInput(ExpenseInput{AmountMinor: ptrI64(1)}, ValidateOptions{RequireAll: true})
	if err == nil || err.Error() != msgCategoryNeeded {
		t.Fatalf("expected category message, got %v", err)
	}
}

func TestValidateCategoryName(t *testing.T) {
	if err := ValidateCategoryName("Food"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, bad := range []string{"", "   ", "\t"} {
		if err := ValidateCategoryName(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestIsCategoryNameUnique(t *testing.T) {
	existing := []string{"Food", "Transport"}

	if IsCategoryNameUnique("food", existing) {
		t.Fatal("case-insensitive collision should not be unique")
	}
	if IsCategoryNameUnique("  FOOD  ", existing) {
		t.Fatal("trimmed collision should not be unique")
	}
	if !IsCategoryNameUnique("Health", existing) {
		t.Fatal("new name should be unique")
	}
}

func TestNormalizeCategoryName(t *testing.T) {
	if got := NormalizeCategoryName("  Groceries "); got != "groceries" {
		t.Fatalf("got %q", got)
	}
}

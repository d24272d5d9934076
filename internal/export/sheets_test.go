package export

import (
	"context"
	"testing"
	"time"

	"pocketbook/internal/core"
)

func TestExpenseRowLayout(t *testing.T) {
	e := core.ExpenseWithCategory{
		Expense: core.Expense{
			ID:            "abc-123",
			AmountMinor:   1250,
			Currency:      "USD",
			OccurredAt:    time.Date(2026, time.March, 5, 23, 30, 0, 0, time.UTC),
			Note:          "team lunch",
			Merchant:      "Corner Cafe",
			PaymentMethod: "card",
		},
		CategoryName: "Food",
	}

	row := expenseRow(e)
	want := []any{"2026-03-05", 12.5, "USD", "Food", "Corner Cafe", "team lunch", "card", "abc-123"}

	if len(row) != len(want) {
		t.Fatalf("row has %d columns, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestNewWriterRequiresCredentials(t *testing.T) {
	_, err := NewWriter(context.Background(), "sheet-id", "Expenses", Credentials{})
	if err == nil {
		t.Error("NewWriter() without credentials should fail")
	}

	_, err = NewWriter(context.Background(), "", "Expenses", Credentials{JSON: "{}"})
	if err == nil {
		t.Error("NewWriter() without spreadsheet id should fail")
	}
}

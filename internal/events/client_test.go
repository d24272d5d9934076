package events

import (
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
		{63, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestExpenseEventJSON(t *testing.T) {
	timestamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := &ExpenseEvent{
		ExpenseID: "3f1c9a0e-1b6d-4a6c-8f2e-7f1f2a3b4c5d",
		Kind:      KindUpdated,
		Timestamp: timestamp,
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ExpenseEventFromJSON(body)
	if err != nil {
		t.Fatalf("ExpenseEventFromJSON() error = %v", err)
	}

	if parsed.ExpenseID != msg.ExpenseID {
		t.Errorf("ExpenseID = %q, want %q", parsed.ExpenseID, msg.ExpenseID)
	}
	if parsed.Kind != msg.Kind {
		t.Errorf("Kind = %q, want %q", parsed.Kind, msg.Kind)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestNewExpenseEventStampsTimestamp(t *testing.T) {
	msg := NewExpenseEvent("abc", KindCreated)
	if msg.Timestamp.IsZero() {
		t.Error("NewExpenseEvent() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewExpenseEvent() Timestamp should be recent")
	}
}

func TestExpenseEventFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseEventFromJSON([]byte(`{"expense_id": 42}`)); err == nil {
		t.Error("ExpenseEventFromJSON() should fail on invalid payload")
	}
}

package events

import (
	"encoding/json"
	"time"
)

// Event kinds mirror the expense lifecycle. Consumers fetch the current row
// by id, so the payload stays a thin pointer rather than a full snapshot.
const (
	KindCreated  = "created"
	KindUpdated  = "updated"
	KindDeleted  = "deleted"
	KindRestored = "restored"
)

// ExpenseEvent announces that an expense changed. The worker looks the
// expense up by id, so a stale event after a rapid edit still exports the
// latest state.
type ExpenseEvent struct {
	ExpenseID string    `json:"expense_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEvent(expenseID, kind string) *ExpenseEvent {
	return &ExpenseEvent{
		ExpenseID: expenseID,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

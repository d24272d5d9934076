package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"pocketbook/internal/core"
	"pocketbook/internal/events"
)

type fakeReader struct {
	expenses map[string]*core.ExpenseWithCategory
	err      error
}

func (f *fakeReader) GetByID(_ context.Context, id string) (*core.ExpenseWithCategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.expenses[id], nil
}

type fakeAppender struct {
	appended []string
	err      error
}

func (f *fakeAppender) AppendExpense(_ context.Context, e core.ExpenseWithCategory) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.appended = append(f.appended, e.ID)
	return "Expenses!A2:H2", nil
}

func sampleExpense(id string) *core.ExpenseWithCategory {
	return &core.ExpenseWithCategory{
		Expense: core.Expense{
			ID:          id,
			AmountMinor: 1500,
			Currency:    "USD",
			OccurredAt:  time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC),
		},
		CategoryName: "Food",
	}
}

func TestHandleEventExportsLiveExpense(t *testing.T) {
	reader := &fakeReader{expenses: map[string]*core.ExpenseWithCategory{"e1": sampleExpense("e1")}}
	sheet := &fakeAppender{}
	w := NewExportWorker(reader, sheet)

	for _, kind := range []string{events.KindCreated, events.KindUpdated, events.KindRestored} {
		if err := w.HandleEvent(context.Background(), events.NewExpenseEvent("e1", kind)); err != nil {
			t.Fatalf("HandleEvent(%s) error = %v", kind, err)
		}
	}

	if len(sheet.appended) != 3 {
		t.Errorf("appended %d rows, want 3", len(sheet.appended))
	}
}

func TestHandleEventSkipsDeleted(t *testing.T) {
	reader := &fakeReader{expenses: map[string]*core.ExpenseWithCategory{"e1": sampleExpense("e1")}}
	sheet := &fakeAppender{}
	w := NewExportWorker(reader, sheet)

	if err := w.HandleEvent(context.Background(), events.NewExpenseEvent("e1", events.KindDeleted)); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if len(sheet.appended) != 0 {
		t.Errorf("appended %v, want nothing for deleted events", sheet.appended)
	}
}

func TestHandleEventSkipsMissingExpense(t *testing.T) {
	reader := &fakeReader{expenses: map[string]*core.ExpenseWithCategory{}}
	sheet := &fakeAppender{}
	w := NewExportWorker(reader, sheet)

	if err := w.HandleEvent(context.Background(), events.NewExpenseEvent("gone", events.KindUpdated)); err != nil {
		t.Fatalf("HandleEvent() error = %v, want nil for missing expense", err)
	}
	if len(sheet.appended) != 0 {
		t.Errorf("appended %v, want nothing", sheet.appended)
	}
}

func TestHandleEventPropagatesErrors(t *testing.T) {
	w := NewExportWorker(&fakeReader{err: errors.New("db closed")}, &fakeAppender{})
	if err := w.HandleEvent(context.Background(), events.NewExpenseEvent("e1", events.KindCreated)); err == nil {
		t.Error("HandleEvent() should surface storage errors")
	}

	reader := &fakeReader{expenses: map[string]*core.ExpenseWithCategory{"e1": sampleExpense("e1")}}
	w = NewExportWorker(reader, &fakeAppender{err: errors.New("quota exceeded")})
	if err := w.HandleEvent(context.Background(), events.NewExpenseEvent("e1", events.KindCreated)); err == nil {
		t.Error("HandleEvent() should surface sheet errors")
	}
}

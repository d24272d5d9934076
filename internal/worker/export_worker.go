// Package worker drives the export pipeline: it consumes expense events and
// mirrors the current row to the configured sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"pocketbook/internal/core"
	"pocketbook/internal/events"
)

// ExpenseReader fetches the current state of an expense by id.
type ExpenseReader interface {
	GetByID(ctx context.Context, id string) (*core.ExpenseWithCategory, error)
}

// SheetAppender writes one expense row to the export sheet.
type SheetAppender interface {
	AppendExpense(ctx context.Context, e core.ExpenseWithCategory) (string, error)
}

// ExportWorker handles expense events. Events carry only the id; the worker
// reads the row at handling time, so it always exports the latest state.
type ExportWorker struct {
	store ExpenseReader
	sheet SheetAppender
}

func NewExportWorker(store ExpenseReader, sheet SheetAppender) *ExportWorker {
	return &ExportWorker{store: store, sheet: sheet}
}

// HandleEvent processes a single expense event. Deleted events are skipped:
// the sheet is an append-only journal and rows are never removed from it.
// A missing expense is also skipped, the event may have been outrun by a
// later delete.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *events.ExpenseEvent) error {
	slog.InfoContext(ctx, "Processing expense event",
		"expense_id", msg.ExpenseID,
		"kind", msg.Kind)

	if msg.Kind == events.KindDeleted {
		slog.InfoContext(ctx, "Skipping deleted expense", "expense_id", msg.ExpenseID)
		return nil
	}

	expense, err := w.store.GetByID(ctx, msg.ExpenseID)
	if err != nil {
		return fmt.Errorf("get expense from storage: %w", err)
	}
	if expense == nil {
		slog.WarnContext(ctx, "Expense no longer live, skipping export",
			"expense_id", msg.ExpenseID,
			"kind", msg.Kind)
		return nil
	}

	rowRef, err := w.sheet.AppendExpense(ctx, *expense)
	if err != nil {
		return fmt.Errorf("append expense to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Exported expense",
		"expense_id", msg.ExpenseID,
		"kind", msg.Kind,
		"row", rowRef)
	return nil
}

// Run consumes events until the context ends.
func (w *ExportWorker) Run(ctx context.Context, client *events.Client) error {
	return client.Consume(ctx, func(msg *events.ExpenseEvent) error {
		return w.HandleEvent(ctx, msg)
	})
}

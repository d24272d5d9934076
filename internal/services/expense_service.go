// Package services composes the stores with the event pipeline. Handlers talk
// to services, never to AMQP directly.
package services

import (
	"context"
	"log/slog"
	"time"

	"pocketbook/internal/core"
	"pocketbook/internal/events"
	"pocketbook/internal/storage"
)

// EventPublisher is the slice of the events client the service needs.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, expenseID, kind string) error
}

// ExpenseService wraps the expense store and announces successful writes.
// Publishing is best-effort: a broker outage must never fail a local write,
// the export is a mirror, not the source of truth.
type ExpenseService struct {
	store     *storage.ExpenseStore
	publisher EventPublisher
}

// NewExpenseService creates the service. publisher may be nil when the event
// pipeline is disabled.
func NewExpenseService(store *storage.ExpenseStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{store: store, publisher: publisher}
}

func (s *ExpenseService) Create(ctx context.Context, in storage.ExpenseCreate) (*core.Expense, error) {
	exp, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, exp.ID, events.KindCreated)
	return exp, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, in storage.ExpenseUpdate) (*core.Expense, error) {
	exp, err := s.store.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, exp.ID, events.KindUpdated)
	return exp, nil
}

func (s *ExpenseService) SoftDelete(ctx context.Context, id string) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, events.KindDeleted)
	return nil
}

func (s *ExpenseService) Restore(ctx context.Context, id string) error {
	if err := s.store.Restore(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, events.KindRestored)
	return nil
}

func (s *ExpenseService) GetByID(ctx context.Context, id string) (*core.ExpenseWithCategory, error) {
	return s.store.GetByID(ctx, id)
}

func (s *ExpenseService) ListByDateRange(ctx context.Context, start, end time.Time, categoryID string) ([]core.ExpenseWithCategory, error) {
	return s.store.ListByDateRange(ctx, start, end, categoryID)
}

// Search lists a date range and narrows it by a free-text query over
// category name, merchant and note.
func (s *ExpenseService) Search(ctx context.Context, start, end time.Time, categoryID, query string) ([]core.ExpenseWithCategory, error) {
	expenses, err := s.store.ListByDateRange(ctx, start, end, categoryID)
	if err != nil {
		return nil, err
	}
	return core.FilterExpensesByQuery(expenses, query), nil
}

func (s *ExpenseService) GetMonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	return s.store.GetMonthlySummary(ctx, year, month)
}

func (s *ExpenseService) GetCategoryBreakdown(ctx context.Context, year, month int) ([]core.CategoryBreakdown, error) {
	return s.store.GetCategoryBreakdown(ctx, year, month)
}

func (s *ExpenseService) publish(ctx context.Context, expenseID, kind string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, expenseID, kind); err != nil {
		slog.WarnContext(ctx, "Failed to publish expense event",
			"error", err,
			"expense_id", expenseID,
			"kind", kind)
	}
}

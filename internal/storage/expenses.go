package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pocketbook/internal/cache"
	"pocketbook/internal/core"
)

// ExpenseStore manages the expense table and the month-keyed aggregate
// caches. Every write clears both caches wholesale; recomputing a handful of
// month aggregates is cheap and wholesale clearing can never serve stale
// totals.
type ExpenseStore struct {
	db              *sql.DB
	summaries       cache.Cache[core.MonthlySummary]
	breakdowns      cache.Cache[[]core.CategoryBreakdown]
	defaultCurrency string
}

func NewExpenseStore(
	db *sql.DB,
	summaries cache.Cache[core.MonthlySummary],
	breakdowns cache.Cache[[]core.CategoryBreakdown],
	defaultCurrency string,
) *ExpenseStore {
	return &ExpenseStore{
		db:              db,
		summaries:       summaries,
		breakdowns:      breakdowns,
		defaultCurrency: defaultCurrency,
	}
}

// ExpenseCreate carries the writable fields for a new expense. An empty
// Currency falls back to the store's configured default.
type ExpenseCreate struct {
	AmountMinor   int64
	Currency      string
	CategoryID    string
	OccurredAt    time.Time
	Note          string
	Merchant      string
	PaymentMethod string
}

// ExpenseUpdate carries a partial update; nil fields are left untouched.
type ExpenseUpdate struct {
	AmountMinor   *int64
	Currency      *string
	CategoryID    *string
	OccurredAt    *time.Time
	Note          *string
	Merchant      *string
	PaymentMethod *string
}

type expenseRow struct {
	id            string
	amountMinor   int64
	currency      string
	categoryID    string
	occurredAt    int64
	note          sql.NullString
	merchant      sql.NullString
	paymentMethod sql.NullString
	createdAt     int64
	updatedAt     int64
	deletedAt     sql.NullInt64
}

func (r expenseRow) toDomain() core.Expense {
	return core.Expense{
		ID:            r.id,
		AmountMinor:   r.amountMinor,
		Currency:      r.currency,
		CategoryID:    r.categoryID,
		OccurredAt:    fromMillis(r.occurredAt),
		Note:          r.note.String,
		Merchant:      r.merchant.String,
		PaymentMethod: r.paymentMethod.String,
		CreatedAt:     fromMillis(r.createdAt),
		UpdatedAt:     fromMillis(r.updatedAt),
		DeletedAt:     millisPtr(r.deletedAt),
	}
}

const expenseJoinQuery = `
	SELECT e.id, e.amount_minor, e.currency, e.category_id, e.occurred_at,
	       e.note, e.merchant, e.payment_method, e.created_at, e.updated_at, e.deleted_at,
	       c.name, c.icon, c.color_token
	FROM expenses e
	LEFT JOIN categories c ON c.id = e.category_id`

func scanExpenseWithCategory(s interface{ Scan(...any) error }) (core.ExpenseWithCategory, error) {
	var r expenseRow
	var catName, catIcon, catColor sql.NullString
	err := s.Scan(
		&r.id, &r.amountMinor, &r.currency, &r.categoryID, &r.occurredAt,
		&r.note, &r.merchant, &r.paymentMethod, &r.createdAt, &r.updatedAt, &r.deletedAt,
		&catName, &catIcon, &catColor,
	)
	if err != nil {
		return core.ExpenseWithCategory{}, err
	}
	return core.ExpenseWithCategory{
		Expense:            r.toDomain(),
		CategoryName:       catName.String,
		CategoryIcon:       catIcon.String,
		CategoryColorToken: catColor.String,
	}, nil
}

// Create validates the full input, assigns an id and timestamps, persists the
// expense and clears the aggregate caches.
func (e *ExpenseStore) Create(ctx context.Context, in ExpenseCreate) (*core.Expense, error) {
	input := core.ExpenseInput{
		AmountMinor: &in.AmountMinor,
		CategoryID:  &in.CategoryID,
		OccurredAt:  &in.OccurredAt,
	}
	if err := core.AssertExpenseInput(input, core.ValidateOptions{RequireAll: true}); err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}

	now := time.Now()
	exp := core.Expense{
		ID:            uuid.NewString(),
		AmountMinor:   in.AmountMinor,
		Currency:      currency,
		CategoryID:    in.CategoryID,
		OccurredAt:    in.OccurredAt,
		Note:          in.Note,
		Merchant:      in.Merchant,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := e.db.ExecContext(ctx, `
		INSERT INTO expenses (id, amount_minor, currency, category_id, occurred_at,
			note, merchant, payment_method, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exp.ID, exp.AmountMinor, exp.Currency, exp.CategoryID, toMillis(exp.OccurredAt),
		nullableString(exp.Note), nullableString(exp.Merchant), nullableString(exp.PaymentMethod),
		toMillis(now), toMillis(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	e.invalidateAggregates()
	slog.InfoContext(ctx, "Created expense", "expense_id", exp.ID, "amount_minor", exp.AmountMinor)
	return &exp, nil
}

// Update validates the supplied fields, applies them to a live expense,
// stamps updatedAt and clears the aggregate caches.
func (e *ExpenseStore) Update(ctx context.Context, id string, in ExpenseUpdate) (*core.Expense, error) {
	input := core.ExpenseInput{
		AmountMinor: in.AmountMinor,
		CategoryID:  in.CategoryID,
		OccurredAt:  in.OccurredAt,
	}
	if err := core.AssertExpenseInput(input, core.ValidateOptions{}); err != nil {
		return nil, err
	}

	sets := []string{"updated_at = ?"}
	args := []any{toMillis(time.Now())}

	if in.AmountMinor != nil {
		sets = append(sets, "amount_minor = ?")
		args = append(args, *in.AmountMinor)
	}
	if in.Currency != nil {
		sets = append(sets, "currency = ?")
		args = append(args, *in.Currency)
	}
	if in.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *in.CategoryID)
	}
	if in.OccurredAt != nil {
		sets = append(sets, "occurred_at = ?")
		args = append(args, toMillis(*in.OccurredAt))
	}
	if in.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, nullableString(*in.Note))
	}
	if in.Merchant != nil {
		sets = append(sets, "merchant = ?")
		args = append(args, nullableString(*in.Merchant))
	}
	if in.PaymentMethod != nil {
		sets = append(sets, "payment_method = ?")
		args = append(args, nullableString(*in.PaymentMethod))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE expenses SET %s WHERE id = ? AND deleted_at IS NULL`, strings.Join(sets, ", "))

	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, core.ErrNotFound
	}

	e.invalidateAggregates()

	withCat, err := e.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if withCat == nil {
		return nil, core.ErrNotFound
	}
	exp := withCat.Expense
	return &exp, nil
}

// SoftDelete stamps deletedAt so the expense drops out of listings and
// aggregates while the row survives for restore.
func (e *ExpenseStore) SoftDelete(ctx context.Context, id string) error {
	now := toMillis(time.Now())
	res, err := e.db.ExecContext(ctx,
		`UPDATE expenses SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("soft delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}

	e.invalidateAggregates()
	slog.InfoContext(ctx, "Soft deleted expense", "expense_id", id)
	return nil
}

// Restore clears deletedAt, bringing the expense back into listings and
// aggregates. Restoring a live expense just refreshes updatedAt.
func (e *ExpenseStore) Restore(ctx context.Context, id string) error {
	res, err := e.db.ExecContext(ctx,
		`UPDATE expenses SET deleted_at = NULL, updated_at = ? WHERE id = ?`,
		toMillis(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("restore expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}

	e.invalidateAggregates()
	slog.InfoContext(ctx, "Restored expense", "expense_id", id)
	return nil
}

// GetByID returns a live expense joined with its category, or nil when the
// id is unknown or soft-deleted.
func (e *ExpenseStore) GetByID(ctx context.Context, id string) (*core.ExpenseWithCategory, error) {
	row := e.db.QueryRowContext(ctx, expenseJoinQuery+` WHERE e.id = ? AND e.deleted_at IS NULL`, id)
	exp, err := scanExpenseWithCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &exp, nil
}

// ListByDateRange returns live expenses within the inclusive window, newest
// occurrence first. A non-empty categoryID narrows to that category.
func (e *ExpenseStore) ListByDateRange(ctx context.Context, start, end time.Time, categoryID string) ([]core.ExpenseWithCategory, error) {
	query := expenseJoinQuery + ` WHERE e.deleted_at IS NULL AND e.occurred_at >= ? AND e.occurred_at <= ?`
	args := []any{toMillis(start), toMillis(end)}
	if categoryID != "" {
		query += ` AND e.category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY e.occurred_at DESC`

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseWithCategory
	for rows.Next() {
		exp, err := scanExpenseWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

// GetMonthlySummary returns the month's spend total and count over live
// expenses, served from cache when a previous read is still valid.
func (e *ExpenseStore) GetMonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	key := core.MonthKey(year, month)
	if cached, ok := e.summaries.Get(key); ok {
		return cached, nil
	}

	start, end := core.MonthBounds(year, month)
	var summary core.MonthlySummary
	summary.Month = key
	err := e.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_minor), 0), COUNT(*)
		FROM expenses
		WHERE deleted_at IS NULL AND occurred_at >= ? AND occurred_at <= ?`,
		toMillis(start), toMillis(end),
	).Scan(&summary.TotalMinor, &summary.Count)
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("monthly summary: %w", err)
	}

	e.summaries.Set(key, summary)
	return summary, nil
}

// GetCategoryBreakdown returns per-category totals for the month, sorted by
// total descending, with each category's rounded share of the month's spend.
func (e *ExpenseStore) GetCategoryBreakdown(ctx context.Context, year, month int) ([]core.CategoryBreakdown, error) {
	key := core.MonthKey(year, month)
	if cached, ok := e.breakdowns.Get(key); ok {
		return cached, nil
	}

	start, end := core.MonthBounds(year, month)
	rows, err := e.db.QueryContext(ctx, `
		SELECT e.category_id, COALESCE(c.name, ''), COALESCE(c.color_token, ''),
		       SUM(e.amount_minor), COUNT(*)
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.deleted_at IS NULL AND e.occurred_at >= ? AND e.occurred_at <= ?
		GROUP BY e.category_id, c.name, c.color_token
		ORDER BY SUM(e.amount_minor) DESC`,
		toMillis(start), toMillis(end),
	)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()

	var breakdown []core.CategoryBreakdown
	var grandTotal int64
	for rows.Next() {
		var b core.CategoryBreakdown
		if err := rows.Scan(&b.CategoryID, &b.CategoryName, &b.CategoryColorToken, &b.TotalMinor, &b.Count); err != nil {
			return nil, fmt.Errorf("scan breakdown row: %w", err)
		}
		grandTotal += b.TotalMinor
		breakdown = append(breakdown, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range breakdown {
		breakdown[i].Percentage = core.Percentage(breakdown[i].TotalMinor, grandTotal)
	}

	e.breakdowns.Set(key, breakdown)
	return breakdown, nil
}

// invalidateAggregates clears every cached month after any expense write.
func (e *ExpenseStore) invalidateAggregates() {
	e.summaries.Clear()
	e.breakdowns.Clear()
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pocketbook/internal/core"
)

// CategoryStore manages the category table. All reads exclude soft-deleted
// rows; archived categories stay visible through ListAll.
type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// CategoryCreate carries the writable fields for a new category. A nil
// SortOrder appends the category after the current maximum.
type CategoryCreate struct {
	Name       string
	Icon       string
	ColorToken string
	SortOrder  *int
	IsArchived bool
}

// CategoryUpdate carries a partial update; nil fields are left untouched.
type CategoryUpdate struct {
	Name       *string
	Icon       *string
	ColorToken *string
	SortOrder  *int
	IsArchived *bool
}

type categoryRow struct {
	id         string
	name       string
	icon       sql.NullString
	colorToken sql.NullString
	sortOrder  int
	isArchived bool
	createdAt  int64
	updatedAt  int64
	deletedAt  sql.NullInt64
}

func (r categoryRow) toDomain() core.Category {
	return core.Category{
		ID:         r.id,
		Name:       r.name,
		Icon:       r.icon.String,
		ColorToken: r.colorToken.String,
		SortOrder:  r.sortOrder,
		IsArchived: r.isArchived,
		CreatedAt:  fromMillis(r.createdAt),
		UpdatedAt:  fromMillis(r.updatedAt),
		DeletedAt:  millisPtr(r.deletedAt),
	}
}

const categoryColumns = `id, name, icon, color_token, sort_order, is_archived, created_at, updated_at, deleted_at`

func scanCategory(s interface{ Scan(...any) error }) (core.Category, error) {
	var r categoryRow
	err := s.Scan(&r.id, &r.name, &r.icon, &r.colorToken, &r.sortOrder, &r.isArchived, &r.createdAt, &r.updatedAt, &r.deletedAt)
	if err != nil {
		return core.Category{}, err
	}
	return r.toDomain(), nil
}

// Create validates the name, enforces case-insensitive uniqueness among live
// categories and assigns the next sort order when none is given.
func (c *CategoryStore) Create(ctx context.Context, in CategoryCreate) (*core.Category, error) {
	if err := core.ValidateCategoryName(in.Name); err != nil {
		return nil, err
	}

	existing, err := c.liveNames(ctx, "")
	if err != nil {
		return nil, err
	}
	if !core.IsCategoryNameUnique(in.Name, existing) {
		return nil, core.ErrDuplicateName
	}

	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	} else {
		err := c.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(sort_order), 0) + 1 FROM categories WHERE deleted_at IS NULL`,
		).Scan(&sortOrder)
		if err != nil {
			return nil, fmt.Errorf("next sort order: %w", err)
		}
	}

	now := time.Now()
	cat := core.Category{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Icon:       in.Icon,
		ColorToken: in.ColorToken,
		SortOrder:  sortOrder,
		IsArchived: in.IsArchived,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, icon, color_token, sort_order, is_archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cat.ID, cat.Name, nullableString(cat.Icon), nullableString(cat.ColorToken),
		cat.SortOrder, cat.IsArchived, toMillis(now), toMillis(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	slog.InfoContext(ctx, "Created category", "category_id", cat.ID, "name", cat.Name)
	return &cat, nil
}

// Update applies the supplied fields to a live category and stamps updatedAt.
func (c *CategoryStore) Update(ctx context.Context, id string, in CategoryUpdate) (*core.Category, error) {
	if in.Name != nil {
		if err := core.ValidateCategoryName(*in.Name); err != nil {
			return nil, err
		}
		existing, err := c.liveNames(ctx, id)
		if err != nil {
			return nil, err
		}
		if !core.IsCategoryNameUnique(*in.Name, existing) {
			return nil, core.ErrDuplicateName
		}
	}

	sets := []string{"updated_at = ?"}
	args := []any{toMillis(time.Now())}

	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*in.Name))
	}
	if in.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, nullableString(*in.Icon))
	}
	if in.ColorToken != nil {
		sets = append(sets, "color_token = ?")
		args = append(args, nullableString(*in.ColorToken))
	}
	if in.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *in.SortOrder)
	}
	if in.IsArchived != nil {
		sets = append(sets, "is_archived = ?")
		args = append(args, *in.IsArchived)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = ? AND deleted_at IS NULL`, strings.Join(sets, ", "))

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, core.ErrNotFound
	}

	return c.GetByID(ctx, id)
}

// Archive hides a category from pickers without touching its expenses.
func (c *CategoryStore) Archive(ctx context.Context, id string) error {
	return c.setArchived(ctx, id, true)
}

// Restore brings an archived category back into active listings.
func (c *CategoryStore) Restore(ctx context.Context, id string) error {
	return c.setArchived(ctx, id, false)
}

func (c *CategoryStore) setArchived(ctx context.Context, id string, archived bool) error {
	res, err := c.db.ExecContext(ctx,
		`UPDATE categories SET is_archived = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		archived, toMillis(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("set archived: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Reorder assigns each id its position in the slice as sort order, inside a
// single transaction so a partial reorder never becomes visible.
func (c *CategoryStore) Reorder(ctx context.Context, ids []string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder transaction: %w", err)
	}
	defer tx.Rollback()

	now := toMillis(time.Now())
	for i, id := range ids {
		_, err := tx.ExecContext(ctx,
			`UPDATE categories SET sort_order = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
			i, now, id,
		)
		if err != nil {
			return fmt.Errorf("reorder category %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder transaction: %w", err)
	}
	return nil
}

// ListActive returns non-archived live categories for pickers.
func (c *CategoryStore) ListActive(ctx context.Context) ([]core.Category, error) {
	return c.list(ctx, `SELECT `+categoryColumns+` FROM categories
		WHERE deleted_at IS NULL AND is_archived = 0
		ORDER BY sort_order ASC, name ASC`)
}

// ListAll returns every live category including archived ones, for settings
// screens and historical display.
func (c *CategoryStore) ListAll(ctx context.Context) ([]core.Category, error) {
	return c.list(ctx, `SELECT `+categoryColumns+` FROM categories
		WHERE deleted_at IS NULL
		ORDER BY sort_order ASC, name ASC`)
}

func (c *CategoryStore) list(ctx context.Context, query string) ([]core.Category, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

// GetByID returns a live category or ErrNotFound.
func (c *CategoryStore) GetByID(ctx context.Context, id string) (*core.Category, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND deleted_at IS NULL`, id)
	cat, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &cat, nil
}

// liveNames returns the names of non-deleted categories, optionally excluding
// one id, for uniqueness checks done with the shared normalizer.
func (c *CategoryStore) liveNames(ctx context.Context, excludeID string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name FROM categories WHERE deleted_at IS NULL AND id != ?`, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list category names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

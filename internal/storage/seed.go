package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type seedCategory struct {
	name       string
	icon       string
	colorToken string
}

var defaultCategories = []seedCategory{
	{"Food", "restaurant", "food"},
	{"Transport", "car", "transport"},
	{"Shopping", "cart", "shopping"},
	{"Bills", "receipt", "bills"},
	{"Health", "medkit", "health"},
	{"Entertainment", "game-controller", "entertainment"},
	{"Education", "book", "education"},
	{"Other", "ellipsis-horizontal", "other"},
}

// SeedDefaultCategories inserts the starter category set on first run. It is
// a no-op when the categories table already has rows, deleted or not, so a
// user who removes a default category does not get it back.
func SeedDefaultCategories(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := toMillis(time.Now())
	for i, c := range defaultCategories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, icon, color_token, sort_order, is_archived, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
			uuid.NewString(), c.name, c.icon, c.colorToken, i+1, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert default category %q: %w", c.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.InfoContext(ctx, "Seeded default categories", "count", len(defaultCategories))
	return nil
}

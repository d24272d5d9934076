package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"pocketbook/internal/core"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustCreateCategory(t *testing.T, store *CategoryStore, name string) *core.Category {
	t.Helper()
	cat, err := store.Create(context.Background(), CategoryCreate{Name: name})
	if err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	return cat
}

func TestCategoryCreateAssignsNextSortOrder(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))

	first := mustCreateCategory(t, store, "Groceries")
	second := mustCreateCategory(t, store, "Rent")

	if second.SortOrder != first.SortOrder+1 {
		t.Errorf("second.SortOrder = %d, want %d", second.SortOrder, first.SortOrder+1)
	}
}

func TestCategoryCreateHonorsExplicitSortOrder(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))

	order := 42
	cat, err := store.Create(context.Background(), CategoryCreate{Name: "Travel", SortOrder: &order})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if cat.SortOrder != 42 {
		t.Errorf("SortOrder = %d, want 42", cat.SortOrder)
	}
}

func TestCategoryCreateRejectsDuplicateName(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))
	mustCreateCategory(t, store, "Groceries")

	tests := []struct {
		name string
		dup  string
	}{
		{"exact match", "Groceries"},
		{"different case", "groceries"},
		{"surrounding whitespace", "  Groceries  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(context.Background(), CategoryCreate{Name: tt.dup})
			if !errors.Is(err, core.ErrDuplicateName) {
				t.Errorf("Create(%q) error = %v, want ErrDuplicateName", tt.dup, err)
			}
		})
	}
}

func TestCategoryCreateRejectsEmptyName(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))

	_, err := store.Create(context.Background(), CategoryCreate{Name: "   "})
	if !core.IsValidation(err) {
		t.Errorf("Create() error = %v, want validation error", err)
	}
}

func TestCategoryUpdatePartial(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))
	cat := mustCreateCategory(t, store, "Groceries")

	icon := "basket"
	updated, err := store.Update(context.Background(), cat.ID, CategoryUpdate{Icon: &icon})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Icon != "basket" {
		t.Errorf("Icon = %q, want %q", updated.Icon, "basket")
	}
	if updated.Name != "Groceries" {
		t.Errorf("Name = %q, want unchanged %q", updated.Name, "Groceries")
	}
	if updated.UpdatedAt.Before(cat.UpdatedAt) {
		t.Errorf("UpdatedAt went backwards: %v -> %v", cat.UpdatedAt, updated.UpdatedAt)
	}
}

func TestCategoryUpdateAllowsKeepingOwnName(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))
	cat := mustCreateCategory(t, store, "Groceries")

	name := "groceries"
	updated, err := store.Update(context.Background(), cat.ID, CategoryUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "groceries" {
		t.Errorf("Name = %q, want %q", updated.Name, "groceries")
	}
}

func TestCategoryUpdateRejectsNameOfOtherCategory(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))
	mustCreateCategory(t, store, "Groceries")
	other := mustCreateCategory(t, store, "Rent")

	name := "GROCERIES"
	_, err := store.Update(context.Background(), other.ID, CategoryUpdate{Name: &name})
	if !errors.Is(err, core.ErrDuplicateName) {
		t.Errorf("Update() error = %v, want ErrDuplicateName", err)
	}
}

func TestCategoryUpdateUnknownID(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))

	icon := "basket"
	_, err := store.Update(context.Background(), "missing", CategoryUpdate{Icon: &icon})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestCategoryArchiveAndRestore(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))
	cat := mustCreateCategory(t, store, "Groceries")
	mustCreateCategory(t, store, "Rent")

	if err := store.Archive(context.Background(), cat.ID); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	active, err := store.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 1 || active[0].Name != "Rent" {
		t.Errorf("ListActive() = %v, want only Rent", active)
	}

	all, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListAll() returned %d categories, want 2", len(all))
	}

	if err := store.Restore(context.Background(), cat.ID); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	active, err = store.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 2 {
		t.Errorf("ListActive() after restore returned %d categories, want 2", len(active))
	}
}

func TestCategoryArchiveUnknownID(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))

	if err := store.Archive(context.Background(), "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Archive() error = %v, want ErrNotFound", err)
	}
}

func TestCategoryReorder(t *testing.T) {
	store := NewCategoryStore(newTestDB(t))
	a := mustCreateCategory(t, store, "Alpha")
	b := mustCreateCategory(t, store, "Beta")
	c := mustCreateCategory(t, store, "Gamma")

	if err := store.Reorder(context.Background(), []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	all, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	got := []string{all[0].Name, all[1].Name, all[2].Name}
	want := []string{"Gamma", "Alpha", "Beta"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSeedDefaultCategories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := SeedDefaultCategories(ctx, db); err != nil {
		t.Fatalf("SeedDefaultCategories() error = %v", err)
	}

	store := NewCategoryStore(db)
	cats, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(cats) != 8 {
		t.Fatalf("seeded %d categories, want 8", len(cats))
	}
	if cats[0].Name != "Food" || cats[7].Name != "Other" {
		t.Errorf("seed order wrong: first %q, last %q", cats[0].Name, cats[7].Name)
	}
	if cats[0].Icon != "restaurant" || cats[0].ColorToken != "food" {
		t.Errorf("Food seed = icon %q token %q, want restaurant/food", cats[0].Icon, cats[0].ColorToken)
	}
	if cats[5].Icon != "game-controller" || cats[5].ColorToken != "entertainment" {
		t.Errorf("Entertainment seed = icon %q token %q, want game-controller/entertainment", cats[5].Icon, cats[5].ColorToken)
	}

	// Second run must not duplicate.
	if err := SeedDefaultCategories(ctx, db); err != nil {
		t.Fatalf("second SeedDefaultCategories() error = %v", err)
	}
	cats, err = store.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(cats) != 8 {
		t.Errorf("after reseed got %d categories, want 8", len(cats))
	}
}

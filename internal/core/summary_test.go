package core

import (
	"testing"
	"time"
)

func TestMonthKey(t *testing.T) {
	if got := MonthKey(2026, 3); got != "2026-03" {
		t.Fatalf("got %q", got)
	}
	if got := MonthKey(2026, 12); got != "2026-12" {
		t.Fatalf("got %q", got)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2026, 2)
	if !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	// 2026 is not a leap year.
	if !end.Equal(time.Date(2026, 2, 28, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("end = %v", end)
	}

	start, end = MonthBounds(2026, 12)
	if !start.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("december start = %v", start)
	}
	if !end.Equal(time.Date(2026, 12, 31, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("december end = %v", end)
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		part, total int64
		want        int
	}{
		{50, 100, 50},
		{1, 3, 33},
		{2, 3, 67},
		{100, 0, 0},
		{0, 100, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.part, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.part, tc.total, got, tc.want)
		}
	}
}

func TestFilterExpensesByQuery(t *testing.T) {
	expenses := []ExpenseWithCategory{
		{Expense: Expense{ID: "a", Merchant: "Corner Cafe"}, CategoryName: "Food"},
		{Expense: Expense{ID: "b", Note: "monthly bus pass"}, CategoryName: "Transport"},
		{Expense: Expense{ID: "c"}, CategoryName: "Health"},
	}

	if got := FilterExpensesByQuery(expenses, ""); len(got) != 3 {
		t.Fatalf("empty query should keep all, got %d", len(got))
	}
	if got := FilterExpensesByQuery(expenses, "cafe"); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("merchant match failed: %+v", got)
	}
	if got := FilterExpensesByQuery(expenses, "BUS"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("note match failed: %+v", got)
	}
	if got := FilterExpensesByQuery(expenses, "transport"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("category match failed: %+v", got)
	}
	if got := FilterExpensesByQuery(expenses, "nothing"); len(got) != 0 {
		t.Fatalf("no match expected, got %d", len(got))
	}
}

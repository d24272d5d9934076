package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MonthlySummary is the spend total for one calendar month over non-deleted
// expenses. Month is the "YYYY-MM" cache key form.
type MonthlySummary struct {
	TotalMinor int64
	Count      int
	Month      string
}

// CategoryBreakdown is one category's share of a month's spend. Percentage is
// rounded per category, so rows may not sum to exactly 100.
type CategoryBreakdown struct {
	CategoryID         string
	CategoryName       string
	CategoryColorToken string
	TotalMinor         int64
	Count              int
	Percentage         int
}

// MonthKey formats a year and month as "YYYY-MM", the aggregate cache key.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthBounds returns the inclusive window for a calendar month: first day
// 00:00:00.000 through last day 23:59:59.999.
func MonthBounds(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// Percentage computes round(part/total*100), 0 when total is zero.
func Percentage(partMinor, totalMinor int64) int {
	if totalMinor <= 0 {
		return 0
	}
	return int(math.Round(float64(partMinor) / float64(totalMinor) * 100))
}

// FilterExpensesByQuery narrows a listing by a free-text query over category
// name, merchant and note. An empty query returns the input unchanged.
func FilterExpensesByQuery(expenses []ExpenseWithCategory, query string) []ExpenseWithCategory {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return expenses
	}
	filtered := make([]ExpenseWithCategory, 0, len(expenses))
	for _, e := range expenses {
		if strings.Contains(strings.ToLower(e.CategoryName), q) ||
			strings.Contains(strings.ToLower(e.Merchant), q) ||
			strings.Contains(strings.ToLower(e.Note), q) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

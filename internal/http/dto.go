package http

import (
	"time"

	"pocketbook/internal/core"
)

type categoryJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon,omitempty"`
	ColorToken string `json:"color_token,omitempty"`
	SortOrder  int    `json:"sort_order"`
	IsArchived bool   `json:"is_archived"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toCategoryJSON(c core.Category) categoryJSON {
	return categoryJSON{
		ID:         c.ID,
		Name:       c.Name,
		Icon:       c.Icon,
		ColorToken: c.ColorToken,
		SortOrder:  c.SortOrder,
		IsArchived: c.IsArchived,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toCategoryListJSON(cats []core.Category) []categoryJSON {
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryJSON(c))
	}
	return out
}

type expenseJSON struct {
	ID            string `json:"id"`
	AmountMinor   int64  `json:"amount_minor"`
	Currency      string `json:"currency"`
	CategoryID    string `json:"category_id"`
	OccurredAt    string `json:"occurred_at"`
	Note          string `json:"note,omitempty"`
	Merchant      string `json:"merchant,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`

	CategoryName       string `json:"category_name,omitempty"`
	CategoryIcon       string `json:"category_icon,omitempty"`
	CategoryColorToken string `json:"category_color_token,omitempty"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:            e.ID,
		AmountMinor:   e.AmountMinor,
		Currency:      e.Currency,
		CategoryID:    e.CategoryID,
		OccurredAt:    e.OccurredAt.UTC().Format(time.RFC3339),
		Note:          e.Note,
		Merchant:      e.Merchant,
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toExpenseWithCategoryJSON(e core.ExpenseWithCategory) expenseJSON {
	out := toExpenseJSON(e.Expense)
	out.CategoryName = e.CategoryName
	out.CategoryIcon = e.CategoryIcon
	out.CategoryColorToken = e.CategoryColorToken
	return out
}

func toExpenseListJSON(expenses []core.ExpenseWithCategory) []expenseJSON {
	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseWithCategoryJSON(e))
	}
	return out
}

type summaryJSON struct {
	Month      string `json:"month"`
	TotalMinor int64  `json:"total_minor"`
	Count      int    `json:"count"`
}

type breakdownRowJSON struct {
	CategoryID         string `json:"category_id"`
	CategoryName       string `json:"category_name"`
	CategoryColorToken string `json:"category_color_token,omitempty"`
	TotalMinor         int64  `json:"total_minor"`
	Count              int    `json:"count"`
	Percentage         int    `json:"percentage"`
}

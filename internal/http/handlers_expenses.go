package http

import (
	"net/http"
	"time"

	"pocketbook/internal/core"
	"pocketbook/internal/storage"
)

type createExpenseRequest struct {
	AmountMinor   *float64 `json:"amount_minor"`
	Amount        string   `json:"amount"`
	Currency      string   `json:"currency"`
	CategoryID    string   `json:"category_id"`
	Date          string   `json:"date"`
	Note          string   `json:"note"`
	Merchant      string   `json:"merchant"`
	PaymentMethod string   `json:"payment_method"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "Malformed request body.")
		return
	}

	amountMinor, err := amountFromRequest(req.AmountMinor, req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var occurredAt time.Time
	if req.Date != "" {
		occurredAt, err = parseDate(req.Date)
		if err != nil {
			respondBadRequest(w, "Date must be in YYYY-MM-DD format.")
			return
		}
	}

	exp, err := s.expenses.Create(r.Context(), storage.ExpenseCreate{
		AmountMinor:   amountMinor,
		Currency:      req.Currency,
		CategoryID:    req.CategoryID,
		OccurredAt:    occurredAt,
		Note:          req.Note,
		Merchant:      req.Merchant,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toExpenseJSON(*exp))
}

type updateExpenseRequest struct {
	AmountMinor   *float64 `json:"amount_minor"`
	Amount        *string  `json:"amount"`
	Currency      *string  `json:"currency"`
	CategoryID    *string  `json:"category_id"`
	Date          *string  `json:"date"`
	Note          *string  `json:"note"`
	Merchant      *string  `json:"merchant"`
	PaymentMethod *string  `json:"payment_method"`
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "Malformed request body.")
		return
	}

	var update storage.ExpenseUpdate

	if req.AmountMinor != nil || req.Amount != nil {
		amountStr := ""
		if req.Amount != nil {
			amountStr = *req.Amount
		}
		amountMinor, err := amountFromRequest(req.AmountMinor, amountStr)
		if err != nil {
			respondError(w, r, err)
			return
		}
		update.AmountMinor = &amountMinor
	}
	if req.Date != nil {
		occurredAt, err := parseDate(*req.Date)
		if err != nil {
			respondBadRequest(w, "Date must be in YYYY-MM-DD format.")
			return
		}
		update.OccurredAt = &occurredAt
	}
	update.Currency = req.Currency
	update.CategoryID = req.CategoryID
	update.Note = req.Note
	update.Merchant = req.Merchant
	update.PaymentMethod = req.PaymentMethod

	exp, err := s.expenses.Update(r.Context(), r.PathValue("id"), update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toExpenseJSON(*exp))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	exp, err := s.expenses.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if exp == nil {
		respondError(w, r, core.ErrNotFound)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseWithCategoryJSON(*exp))
}

// handleListExpenses serves GET /api/expenses with start/end date bounds,
// optional category_id and optional free-text q. Missing bounds default to
// the current month.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, end := core.MonthBounds(parseYearMonth(r))
	if v := q.Get("start"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			respondBadRequest(w, "start must be in YYYY-MM-DD format.")
			return
		}
		start = parsed
	}
	if v := q.Get("end"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			respondBadRequest(w, "end must be in YYYY-MM-DD format.")
			return
		}
		// The end date is inclusive: extend to the last millisecond of it.
		end = parsed.AddDate(0, 0, 1).Add(-time.Millisecond)
	}

	expenses, err := s.expenses.Search(r.Context(), start, end, q.Get("category_id"), q.Get("q"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toExpenseListJSON(expenses))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.SoftDelete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRestoreExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.expenses.Restore(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	exp, err := s.expenses.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if exp == nil {
		respondError(w, r, core.ErrNotFound)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseWithCategoryJSON(*exp))
}

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pocketbook/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondError maps domain errors to status codes: validation failures are
// 422, missing records 404, duplicate category names 409, anything else is a
// generic 500 so storage internals never leak to clients.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ve.Message})
	case errors.Is(err, core.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Not found."})
	case errors.Is(err, core.ErrDuplicateName):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "A category with this name already exists."})
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error."})
	}
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parseYearMonth reads year and month query parameters, defaulting to the
// current month when absent or unparseable.
func parseYearMonth(r *http.Request) (year, month int) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}

	return year, month
}

// parseDate parses YYYY-MM-DD into a UTC time at midnight.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// amountFromRequest resolves the two accepted amount forms: a numeric
// amount_minor (integer minor units) or a decimal amount string in major
// units. Exactly one must be present.
func amountFromRequest(amountMinor *float64, amount string) (int64, error) {
	switch {
	case amountMinor != nil:
		return core.AmountMinorFromNumber(*amountMinor)
	case amount != "":
		return core.ParseDecimalToMinor(amount)
	default:
		return 0, core.NewValidationError("Amount must be greater than zero.")
	}
}

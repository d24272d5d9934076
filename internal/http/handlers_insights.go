package http

import (
	"net/http"
)

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	summary, err := s.expenses.GetMonthlySummary(r.Context(), year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, summaryJSON{
		Month:      summary.Month,
		TotalMinor: summary.TotalMinor,
		Count:      summary.Count,
	})
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	breakdown, err := s.expenses.GetCategoryBreakdown(r.Context(), year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rows := make([]breakdownRowJSON, 0, len(breakdown))
	for _, b := range breakdown {
		rows = append(rows, breakdownRowJSON{
			CategoryID:         b.CategoryID,
			CategoryName:       b.CategoryName,
			CategoryColorToken: b.CategoryColorToken,
			TotalMinor:         b.TotalMinor,
			Count:              b.Count,
			Percentage:         b.Percentage,
		})
	}

	respondJSON(w, http.StatusOK, rows)
}

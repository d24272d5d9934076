// Package http exposes the expense tracker as a JSON API.
package http

import (
	"net/http"
	"time"

	applog "pocketbook/internal/log"
	"pocketbook/internal/services"
	"pocketbook/internal/storage"
)

type Server struct {
	http.Server
	expenses   *services.ExpenseService
	categories *storage.CategoryStore
	logger     *applog.Logger
}

func NewServer(addr string, expenses *services.ExpenseService, categories *storage.CategoryStore, logger *applog.Logger) *Server {
	s := &Server{
		expenses:   expenses,
		categories: categories,
		logger:     logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("POST /api/expenses/{id}/restore", s.handleRestoreExpense)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PATCH /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("POST /api/categories/{id}/archive", s.handleArchiveCategory)
	mux.HandleFunc("POST /api/categories/{id}/restore", s.handleRestoreCategory)
	mux.HandleFunc("PUT /api/categories/reorder", s.handleReorderCategories)

	mux.HandleFunc("GET /api/insights/summary", s.handleMonthlySummary)
	mux.HandleFunc("GET /api/insights/breakdown", s.handleCategoryBreakdown)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           applog.RequestMiddleware(logger)(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

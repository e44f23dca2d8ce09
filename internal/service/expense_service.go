package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hearthhq/hearth/internal/calculator"
	"github.com/hearthhq/hearth/internal/docstore"
	"github.com/hearthhq/hearth/internal/models"
)

// ExpenseService handles expense CRUD and the dashboard settlement summary.
type ExpenseService struct {
	store   docstore.Store
	summary calculator.Strategy
}

// NewExpenseService creates an ExpenseService backed by the given store.
// The dashboard summary uses the matrix settlement strategy.
func NewExpenseService(store docstore.Store) *ExpenseService {
	return &ExpenseService{
		store:   store,
		summary: calculator.MatrixStrategy{},
	}
}

// Register mounts the expense routes.
func (s *ExpenseService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/expenses", s.list)
	mux.HandleFunc("POST /api/expenses", s.save)
	mux.HandleFunc("PUT /api/expenses/{id}", s.save)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.delete)
	mux.HandleFunc("GET /api/expenses/summary", s.settlementSummary)
}

func (s *ExpenseService) list(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context(), docstore.Expenses)
	if err != nil {
		slog.Error("failed to list expenses", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ExpensesFromDocs(docs))
}

// save is the upsert: POST creates, PUT with an id path updates in place.
func (s *ExpenseService) save(w http.ResponseWriter, r *http.Request) {
	var exp models.Expense
	if err := readJSON(r, &exp); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := ValidateExpense(exp); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	fields, err := models.ToDoc(NormalizeExpense(exp))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		id, err = s.store.Create(r.Context(), docstore.Expenses, fields)
		if err != nil {
			slog.Error("failed to create expense", "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	} else {
		if err := s.store.Update(r.Context(), docstore.Expenses, id, fields); err != nil {
			slog.Error("failed to update expense", "id", id, "error", err)
			writeError(w, http.StatusNotFound, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *ExpenseService) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Delete(r.Context(), docstore.Expenses, id); err != nil {
		slog.Error("failed to delete expense", "id", id, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// settlementSummary recomputes the matrix-path settlement over the full
// current ledgers.
func (s *ExpenseService) settlementSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.computeSummary(r.Context())
	if err != nil {
		slog.Error("failed to compute settlement summary", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *ExpenseService) computeSummary(ctx context.Context) (calculator.Result, error) {
	expenseDocs, err := s.store.List(ctx, docstore.Expenses)
	if err != nil {
		return calculator.Result{}, fmt.Errorf("failed to list expenses: %w", err)
	}
	paymentDocs, err := s.store.List(ctx, docstore.Payments)
	if err != nil {
		return calculator.Result{}, fmt.Errorf("failed to list payments: %w", err)
	}
	roommateDocs, err := s.store.List(ctx, docstore.Roommates)
	if err != nil {
		return calculator.Result{}, fmt.Errorf("failed to list roommates: %w", err)
	}

	return s.summary.Compute(
		models.ExpensesFromDocs(expenseDocs),
		models.PaymentsFromDocs(paymentDocs),
		models.RoommatesFromDocs(roommateDocs),
	), nil
}

package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hearthhq/hearth/internal/calculator"
	"github.com/hearthhq/hearth/internal/docstore"
	"github.com/hearthhq/hearth/internal/models"
)

// PaymentService handles payment CRUD, the "who owes whom" list, and the
// non-member balance view.
type PaymentService struct {
	store    docstore.Store
	whoOwes  calculator.Strategy
	nowMilli func() int64
}

// NewPaymentService creates a PaymentService backed by the given store.
// The who-owes-whom list uses the incremental-offset settlement strategy.
func NewPaymentService(store docstore.Store) *PaymentService {
	return &PaymentService{
		store:    store,
		whoOwes:  calculator.OffsetStrategy{},
		nowMilli: func() int64 { return time.Now().UnixMilli() },
	}
}

// Register mounts the payment routes.
func (s *PaymentService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/payments", s.list)
	mux.HandleFunc("POST /api/payments", s.create)
	mux.HandleFunc("PUT /api/payments/{id}", s.update)
	mux.HandleFunc("DELETE /api/payments/{id}", s.delete)
	mux.HandleFunc("GET /api/payments/balances", s.balances)
	mux.HandleFunc("GET /api/payments/nonmembers", s.nonMembers)
}

func (s *PaymentService) list(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context(), docstore.Payments)
	if err != nil {
		slog.Error("failed to list payments", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, models.PaymentsFromDocs(docs))
}

func (s *PaymentService) create(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := readJSON(r, &payment); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := ValidatePayment(payment); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	payment.Timestamp = s.nowMilli()
	fields, err := models.ToDoc(payment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id, err := s.store.Create(r.Context(), docstore.Payments, fields)
	if err != nil {
		slog.Error("failed to create payment", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *PaymentService) update(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := readJSON(r, &payment); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := ValidatePayment(payment); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	fields, err := models.ToDoc(payment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	// Updates keep the original creation timestamp.
	delete(fields, "timestamp")

	id := r.PathValue("id")
	if err := s.store.Update(r.Context(), docstore.Payments, id, fields); err != nil {
		slog.Error("failed to update payment", "id", id, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *PaymentService) delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Delete(r.Context(), docstore.Payments, id); err != nil {
		slog.Error("failed to delete payment", "id", id, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// balances recomputes the offset-path "who owes whom" list.
func (s *PaymentService) balances(w http.ResponseWriter, r *http.Request) {
	expenseDocs, err := s.store.List(r.Context(), docstore.Expenses)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	paymentDocs, err := s.store.List(r.Context(), docstore.Payments)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	roommateDocs, err := s.store.List(r.Context(), docstore.Roommates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := s.whoOwes.Compute(
		models.ExpensesFromDocs(expenseDocs),
		models.PaymentsFromDocs(paymentDocs),
		models.RoommatesFromDocs(roommateDocs),
	)
	writeJSON(w, http.StatusOK, result)
}

// nonMembers sums payments touching anyone outside the roommate registry.
func (s *PaymentService) nonMembers(w http.ResponseWriter, r *http.Request) {
	paymentDocs, err := s.store.List(r.Context(), docstore.Payments)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	roommateDocs, err := s.store.List(r.Context(), docstore.Roommates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	balances := calculator.NonMemberBalances(
		models.PaymentsFromDocs(paymentDocs),
		models.RoommatesFromDocs(roommateDocs),
	)
	writeJSON(w, http.StatusOK, balances)
}

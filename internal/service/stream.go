package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hearthhq/hearth/internal/calculator"
	"github.com/hearthhq/hearth/internal/docstore"
	"github.com/hearthhq/hearth/internal/models"
)

// StreamService pushes live settlement summaries over server-sent events.
// Every mutation to expenses, payments, or roommates triggers a recompute
// from the full snapshots, so clients never apply deltas.
type StreamService struct {
	store   docstore.Store
	summary calculator.Strategy
}

// NewStreamService creates a StreamService backed by the given store.
func NewStreamService(store docstore.Store) *StreamService {
	return &StreamService{store: store, summary: calculator.MatrixStrategy{}}
}

// Register mounts the stream route.
func (s *StreamService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/summary/stream", s.stream)
}

func (s *StreamService) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}

	expenses, cancelExpenses := s.store.Subscribe(docstore.Expenses)
	defer cancelExpenses()
	payments, cancelPayments := s.store.Subscribe(docstore.Payments)
	defer cancelPayments()
	roommates, cancelRoommates := s.store.Subscribe(docstore.Roommates)
	defer cancelRoommates()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Latest snapshot per collection. Subscribe primes each channel, so the
	// first recompute happens after all three initial snapshots arrive.
	var (
		curExpenses, curPayments, curRoommates []docstore.Document
		gotExpenses, gotPayments, gotRoommates bool
	)

	for {
		select {
		case <-r.Context().Done():
			return
		case docs, open := <-expenses:
			if !open {
				return
			}
			curExpenses, gotExpenses = docs, true
		case docs, open := <-payments:
			if !open {
				return
			}
			curPayments, gotPayments = docs, true
		case docs, open := <-roommates:
			if !open {
				return
			}
			curRoommates, gotRoommates = docs, true
		}

		if !gotExpenses || !gotPayments || !gotRoommates {
			continue
		}

		result := s.summary.Compute(
			models.ExpensesFromDocs(curExpenses),
			models.PaymentsFromDocs(curPayments),
			models.RoommatesFromDocs(curRoommates),
		)
		if err := writeEvent(w, "summary", result); err != nil {
			slog.Debug("summary stream closed", "error", err)
			return
		}
		flusher.Flush()
	}
}

func writeEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}

package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hearthhq/hearth/internal/docstore"
	"github.com/hearthhq/hearth/internal/models"
)

// HouseholdService handles the non-money collections: the roommate
// registry, chores, the shopping list, and the fridge inventory.
type HouseholdService struct {
	store docstore.Store
	now   func() time.Time
}

// NewHouseholdService creates a HouseholdService backed by the given store.
func NewHouseholdService(store docstore.Store) *HouseholdService {
	return &HouseholdService{store: store, now: time.Now}
}

// Register mounts the household routes.
func (s *HouseholdService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/roommates", s.listRoommates)
	mux.HandleFunc("POST /api/roommates", s.addRoommate)
	mux.HandleFunc("DELETE /api/roommates/{id}", s.deleteFrom(docstore.Roommates))

	mux.HandleFunc("GET /api/chores", s.listChores)
	mux.HandleFunc("POST /api/chores", s.addChore)
	mux.HandleFunc("PATCH /api/chores/{id}", s.patchInto(docstore.Chores))
	mux.HandleFunc("DELETE /api/chores/completed", s.deleteCompleted(docstore.Chores))
	mux.HandleFunc("DELETE /api/chores/{id}", s.deleteFrom(docstore.Chores))

	mux.HandleFunc("GET /api/shopping", s.listShopping)
	mux.HandleFunc("POST /api/shopping", s.addShoppingItem)
	mux.HandleFunc("PATCH /api/shopping/{id}", s.patchInto(docstore.ShoppingList))
	mux.HandleFunc("DELETE /api/shopping/completed", s.deleteCompleted(docstore.ShoppingList))
	mux.HandleFunc("DELETE /api/shopping/{id}", s.deleteFrom(docstore.ShoppingList))

	mux.HandleFunc("GET /api/fridge", s.listFridge)
	mux.HandleFunc("POST /api/fridge", s.addFridgeItem)
	mux.HandleFunc("PUT /api/fridge/{id}", s.patchInto(docstore.FridgeInventory))
	mux.HandleFunc("DELETE /api/fridge/{id}", s.deleteFrom(docstore.FridgeInventory))
}

func (s *HouseholdService) listRoommates(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context(), docstore.Roommates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, models.RoommatesFromDocs(docs))
}

func (s *HouseholdService) addRoommate(w http.ResponseWriter, r *http.Request) {
	var roommate models.Roommate
	if err := readJSON(r, &roommate); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	roommate.Name = strings.TrimSpace(roommate.Name)
	if roommate.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("roommate name is required"))
		return
	}
	roommate.Email = strings.TrimSpace(roommate.Email)

	fields, err := models.ToDoc(roommate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	id, err := s.store.Create(r.Context(), docstore.Roommates, fields)
	if err != nil {
		slog.Error("failed to add roommate", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *HouseholdService) listChores(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context(), docstore.Chores)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ChoresFromDocs(docs))
}

func (s *HouseholdService) addChore(w http.ResponseWriter, r *http.Request) {
	var chore models.Chore
	if err := readJSON(r, &chore); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	chore.Name = strings.TrimSpace(chore.Name)
	if chore.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("chore name is required"))
		return
	}
	chore.IsCompleted = false
	chore.Date = s.now().Format("2006-01-02")

	fields, err := models.ToDoc(chore)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	id, err := s.store.Create(r.Context(), docstore.Chores, fields)
	if err != nil {
		slog.Error("failed to add chore", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *HouseholdService) listShopping(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context(), docstore.ShoppingList)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ShoppingFromDocs(docs))
}

func (s *HouseholdService) addShoppingItem(w http.ResponseWriter, r *http.Request) {
	var item models.ShoppingItem
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("item name cannot be empty"))
		return
	}
	item.IsCompleted = false

	fields, err := models.ToDoc(item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	id, err := s.store.Create(r.Context(), docstore.ShoppingList, fields)
	if err != nil {
		slog.Error("failed to add shopping item", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *HouseholdService) listFridge(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context(), docstore.FridgeInventory)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	items := models.FridgeFromDocs(docs)

	query := r.URL.Query()
	filter := models.FridgeFilter{
		Owners: query["owner"],
		Types:  query["type"],
		Status: query.Get("status"),
	}
	writeJSON(w, http.StatusOK, filter.Apply(items, s.now()))
}

func (s *HouseholdService) addFridgeItem(w http.ResponseWriter, r *http.Request) {
	var item models.FridgeItem
	if err := readJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("item name cannot be empty"))
		return
	}
	if len(item.Owner) == 0 {
		item.Owner = []string{"Shared"}
	}
	if item.Type == "" {
		item.Type = "Fridge"
	}

	fields, err := models.ToDoc(item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	id, err := s.store.Create(r.Context(), docstore.FridgeInventory, fields)
	if err != nil {
		slog.Error("failed to add fridge item", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// patchInto merges arbitrary fields into a document, covering toggles,
// reassignment, and in-place edits.
func (s *HouseholdService) patchInto(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields docstore.Document
		if err := readJSON(r, &fields); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		id := r.PathValue("id")
		if err := s.store.Update(r.Context(), collection, id, fields); err != nil {
			slog.Error("failed to update document", "collection", collection, "id", id, "error", err)
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": id})
	}
}

func (s *HouseholdService) deleteFrom(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.store.Delete(r.Context(), collection, id); err != nil {
			slog.Error("failed to delete document", "collection", collection, "id", id, "error", err)
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": id})
	}
}

// deleteCompleted clears every completed entry from a checklist collection.
func (s *HouseholdService) deleteCompleted(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := s.store.List(r.Context(), collection)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		deleted := 0
		for _, doc := range docs {
			if done, _ := doc["isCompleted"].(bool); !done {
				continue
			}
			if err := s.store.Delete(r.Context(), collection, doc.ID()); err != nil {
				slog.Error("failed to delete completed entry", "collection", collection, "id", doc.ID(), "error", err)
				continue
			}
			deleted++
		}
		writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
	}
}

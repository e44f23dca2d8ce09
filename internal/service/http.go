// Package service implements the JSON HTTP handlers for the household API.
// Each service owns one domain area and registers its routes on the shared
// mux. Handlers validate before any write; store failures are logged and
// surfaced without local state to roll back.
package service

import (
	"encoding/json"
	"errors"
	"net/http"
)

var errBadJSON = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadJSON
	}
	return nil
}

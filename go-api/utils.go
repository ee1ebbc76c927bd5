package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// urlID parses the {id} route param. Anything that is not a positive integer is a 404,
// the same as an id that does not exist in the route table.
func urlID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || n == 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return uint(n), true
}

func (s *server) internalError(w http.ResponseWriter, op string, err error) {
	log.Printf("[http] %s: %v", op, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

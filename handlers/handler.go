package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sufra-dev/sufra/catalog"
	"github.com/sufra-dev/sufra/orders"
	"github.com/sufra-dev/sufra/settings"
	"github.com/sufra-dev/sufra/storage"
)

// Handler holds the stores every route works against.
type Handler struct {
	Catalog  catalog.Catalog
	Orders   *orders.Repository
	Settings *settings.Store
	Store    storage.Store

	JWTSecret          []byte
	AdminPasswordHash  string
	DriverPasswordHash string
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondValidation reports field-level validation failures as a JSON map so
// the caller can highlight every invalid field at once.
func respondValidation(w http.ResponseWriter, errs orders.ValidationErrors) {
	respondJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

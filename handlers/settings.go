package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sufra-dev/sufra/models"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Settings.Get()
	if err != nil {
		http.Error(w, "Failed to fetch settings", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// UpdateSettings overwrites the settings record wholesale.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var cfg models.SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := h.Settings.Set(cfg); err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/utils"
)

// Login exchanges a staff role plus its shared password for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Role     models.Role `json:"role"`
		Password string      `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	var hash string
	switch input.Role {
	case models.RoleAdmin:
		hash = h.AdminPasswordHash
	case models.RoleDriver:
		hash = h.DriverPasswordHash
	default:
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}
	if hash == "" || !utils.CheckPassword(hash, input.Password) {
		http.Error(w, "Incorrect password", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(input.Role, h.JWTSecret)
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sufra-dev/sufra/catalog"
	"github.com/sufra-dev/sufra/currency"
	"github.com/sufra-dev/sufra/models"
)

// menuItemResponse decorates a menu item with its price in display currency.
type menuItemResponse struct {
	models.MenuItem
	DisplayPrice string `json:"display_price"`
}

func toMenuResponse(item models.MenuItem) menuItemResponse {
	return menuItemResponse{
		MenuItem:     item,
		DisplayPrice: currency.Format(currency.ToDisplay(item.Price)),
	}
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.MenuItem
		err   error
	)
	switch {
	case r.URL.Query().Get("category") != "":
		items, err = h.Catalog.ListByCategory(r.URL.Query().Get("category"))
	case r.URL.Query().Get("featured") == "true":
		items, err = h.Catalog.ListFeatured()
	default:
		items, err = h.Catalog.List()
	}
	if err != nil {
		http.Error(w, "Failed to fetch menu", http.StatusInternalServerError)
		return
	}

	out := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toMenuResponse(item))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.GetByID(mux.Vars(r)["id"])
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch menu item", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, toMenuResponse(item))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.Categories()
	if err != nil {
		http.Error(w, "Failed to fetch categories", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var input models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	item, err := h.Catalog.Add(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusCreated, toMenuResponse(item))
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var patch models.MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	item, err := h.Catalog.Update(mux.Vars(r)["id"], patch)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update menu item", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, toMenuResponse(item))
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Catalog.Delete(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Failed to delete menu item", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": removed})
}

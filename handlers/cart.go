package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sufra-dev/sufra/cart"
	"github.com/sufra-dev/sufra/catalog"
	"github.com/sufra-dev/sufra/currency"
	"github.com/sufra-dev/sufra/middlewares"
	"github.com/sufra-dev/sufra/models"
)

func (h *Handler) clientCart(w http.ResponseWriter, r *http.Request) *cart.Cart {
	clientID, err := middlewares.GetClientID(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil
	}
	return cart.New(h.Store, clientID)
}

type cartResponse struct {
	Items             []models.CartLineItem `json:"items"`
	TotalItems        int                   `json:"total_items"`
	TotalPrice        decimal.Decimal       `json:"total_price"`
	DisplayTotalPrice string                `json:"display_total_price"`
}

func (h *Handler) respondCart(w http.ResponseWriter, c *cart.Cart) {
	items, err := c.Items()
	if err != nil {
		http.Error(w, "Failed to read cart", http.StatusInternalServerError)
		return
	}
	totalItems := 0
	totalPrice := decimal.Zero
	for _, item := range items {
		totalItems += item.Quantity
		totalPrice = totalPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	respondJSON(w, http.StatusOK, cartResponse{
		Items:             items,
		TotalItems:        totalItems,
		TotalPrice:        totalPrice,
		DisplayTotalPrice: currency.Format(currency.ToDisplay(totalPrice)),
	})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c := h.clientCart(w, r)
	if c == nil {
		return
	}
	h.respondCart(w, c)
}

// AddCartItem looks the product up in the catalog and snapshots its name,
// image and effective price (base plus selected option deltas) into the cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.clientCart(w, r)
	if c == nil {
		return
	}

	var input struct {
		ProductID string            `json:"id"`
		Quantity  int               `json:"quantity"`
		Options   map[string]string `json:"options,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	item, err := h.Catalog.GetByID(input.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch menu item", http.StatusInternalServerError)
		return
	}

	line := models.CartLineItem{
		ProductID: item.ID,
		Name:      item.Name,
		Price:     item.EffectivePrice(input.Options),
		Quantity:  input.Quantity,
		Image:     item.Image,
		Options:   input.Options,
	}
	if err := c.Add(line); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respondCart(w, c)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.clientCart(w, r)
	if c == nil {
		return
	}

	var input struct {
		ProductID string            `json:"id"`
		Quantity  int               `json:"quantity"`
		Options   map[string]string `json:"options,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := c.SetQuantity(input.ProductID, input.Quantity, input.Options); err != nil {
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}
	h.respondCart(w, c)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.clientCart(w, r)
	if c == nil {
		return
	}

	var input struct {
		ProductID string            `json:"id"`
		Options   map[string]string `json:"options,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := c.Remove(input.ProductID, input.Options); err != nil {
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}
	h.respondCart(w, c)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.clientCart(w, r)
	if c == nil {
		return
	}
	if err := c.Clear(); err != nil {
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}
	h.respondCart(w, c)
}

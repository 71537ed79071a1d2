package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/sufra-dev/sufra/cart"
	"github.com/sufra-dev/sufra/middlewares"
	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/orders"
)

// orderResponse decorates an order with its status display metadata.
type orderResponse struct {
	models.Order
	StatusInfo models.StatusInfo `json:"status_info"`
}

func toOrderResponse(order models.Order) orderResponse {
	return orderResponse{Order: order, StatusInfo: order.Status.Describe()}
}

func toOrderResponses(list []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for _, order := range list {
		out = append(out, toOrderResponse(order))
	}
	return out
}

// Checkout converts the client's cart into a persisted order. The cart is
// cleared only after the order was created successfully.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	clientID, err := middlewares.GetClientID(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var info models.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	c := cart.New(h.Store, clientID)
	items, err := c.Items()
	if err != nil {
		http.Error(w, "Failed to read cart", http.StatusInternalServerError)
		return
	}

	order, err := h.Orders.Create(clientID, items, info)
	var verrs orders.ValidationErrors
	if errors.As(err, &verrs) {
		respondValidation(w, verrs)
		return
	}
	if err != nil {
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}

	if err := c.Clear(); err != nil {
		// the order exists; a stale cart is recoverable
		logrus.WithError(err).WithField("order_id", order.ID).Error("failed to clear cart after checkout")
	}
	respondJSON(w, http.StatusCreated, toOrderResponse(order))
}

// MyOrders lists the orders created by the calling client session.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	clientID, err := middlewares.GetClientID(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Orders.ByClient(clientID)
	if err != nil {
		http.Error(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponses(list))
}

// GetOrder returns one of the calling client's own orders. Orders belonging
// to other clients read as not found.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	clientID, err := middlewares.GetClientID(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	order, err := h.Orders.ByID(mux.Vars(r)["id"])
	if errors.Is(err, orders.ErrNotFound) || (err == nil && order.ClientID != clientID) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch order", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListOrders lists every order, optionally filtered by exact status.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Order
		err  error
	)
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.IsValid() {
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}
		list, err = h.Orders.ByStatus(status)
	} else {
		list, err = h.Orders.All()
	}
	if err != nil {
		http.Error(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponses(list))
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if !input.Status.IsValid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.UpdateStatus(mux.Vars(r)["id"], input.Status)
	if errors.Is(err, orders.ErrNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListDeliverable lists the orders a driver acts on: ready and out for
// delivery, merged most recent first.
func (h *Handler) ListDeliverable(w http.ResponseWriter, r *http.Request) {
	ready, err := h.Orders.ByStatus(models.StatusReady)
	if err != nil {
		http.Error(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}
	delivering, err := h.Orders.ByStatus(models.StatusDelivering)
	if err != nil {
		http.Error(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}
	merged := append(delivering, ready...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	respondJSON(w, http.StatusOK, toOrderResponses(merged))
}

// UpdateDeliveryStatus is the driver-facing transition endpoint. The
// repository accepts any transition; this boundary only offers the two that
// make operational sense for delivery staff.
func (h *Handler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Status != models.StatusDelivering && input.Status != models.StatusDelivered {
		http.Error(w, "Status not allowed for delivery staff", http.StatusForbidden)
		return
	}

	order, err := h.Orders.UpdateStatus(mux.Vars(r)["id"], input.Status)
	if errors.Is(err, orders.ErrNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}

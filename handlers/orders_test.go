package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/orders"
	"github.com/sufra-dev/sufra/settings"
	"github.com/sufra-dev/sufra/storage"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	cfg := settings.NewStore(store)
	return &Handler{
		Orders:   orders.NewRepository(store, cfg),
		Settings: cfg,
		Store:    store,
	}
}

func createOrderWithStatus(t *testing.T, h *Handler, status models.OrderStatus) models.Order {
	t.Helper()
	items := []models.CartLineItem{{
		ProductID: "p1",
		Name:      "Falafel",
		Price:     decimal.NewFromFloat(3.50),
		Quantity:  1,
	}}
	info := models.CustomerInfo{
		Name:    "Sara",
		Phone:   "+964 770 123 4567",
		Address: "Baghdad, Karrada",
	}
	order, err := h.Orders.Create("client-1", items, info)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := h.Orders.UpdateStatus(order.ID, status); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	return order
}

func TestListDeliverable_MergedMostRecentFirst(t *testing.T) {
	h := newTestHandler(t)

	// interleave the two statuses so a per-status concatenation would come
	// back out of order
	statuses := []models.OrderStatus{
		models.StatusReady,
		models.StatusDelivering,
		models.StatusReady,
		models.StatusDelivering,
	}
	created := make([]models.Order, 0, len(statuses))
	for _, status := range statuses {
		created = append(created, createOrderWithStatus(t, h, status))
		time.Sleep(2 * time.Millisecond)
	}
	// orders in other statuses stay out of the driver's list
	createOrderWithStatus(t, h, models.StatusPending)

	w := httptest.NewRecorder()
	h.ListDeliverable(w, httptest.NewRequest(http.MethodGet, "/api/delivery/orders", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", w.Code, http.StatusOK)
	}

	var got []struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"created_at"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != len(created) {
		t.Fatalf("got %d orders, expected %d", len(got), len(created))
	}
	for i, order := range got {
		want := created[len(created)-1-i]
		if order.ID != want.ID {
			t.Errorf("position %d: got %s, expected %s", i, order.ID, want.ID)
		}
		if i > 0 && order.CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("position %d is newer than position %d", i, i-1)
		}
	}
}

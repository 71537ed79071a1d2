package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/storage"
)

func newTestCart(t *testing.T) (*Cart, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return New(store, "client-1"), store
}

func line(productID string, qty int, price string, options map[string]string) models.CartLineItem {
	return models.CartLineItem{
		ProductID: productID,
		Name:      "item " + productID,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
		Options:   options,
	}
}

func mustItems(t *testing.T, c *Cart) []models.CartLineItem {
	t.Helper()
	items, err := c.Items()
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	return items
}

// checkTotals verifies the derived totals against the line items themselves.
func checkTotals(t *testing.T, c *Cart) {
	t.Helper()
	items := mustItems(t, c)
	wantItems := 0
	wantPrice := decimal.Zero
	for _, item := range items {
		wantItems += item.Quantity
		wantPrice = wantPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	gotItems, err := c.TotalItems()
	if err != nil {
		t.Fatalf("TotalItems: %v", err)
	}
	gotPrice, err := c.TotalPrice()
	if err != nil {
		t.Fatalf("TotalPrice: %v", err)
	}
	if gotItems != wantItems {
		t.Errorf("TotalItems = %d, expected %d", gotItems, wantItems)
	}
	if !gotPrice.Equal(wantPrice) {
		t.Errorf("TotalPrice = %s, expected %s", gotPrice, wantPrice)
	}
}

func TestAdd_MergesSameIdentity(t *testing.T) {
	c, _ := newTestCart(t)

	if err := c.Add(line("p1", 1, "5.00", nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(line("p1", 2, "5.00", nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := mustItems(t, c)
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("merged quantity = %d, expected 3", items[0].Quantity)
	}
	total, _ := c.TotalItems()
	if total != 3 {
		t.Errorf("TotalItems = %d, expected 3", total)
	}
}

func TestAdd_LastWriteWinsForNonQuantityFields(t *testing.T) {
	c, _ := newTestCart(t)

	first := line("p1", 1, "5.00", nil)
	second := line("p1", 1, "6.00", nil)
	second.Name = "renamed"
	if err := c.Add(first); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(second); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := mustItems(t, c)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one merged item with quantity 2, got %+v", items)
	}
	if !items[0].Price.Equal(decimal.RequireFromString("6.00")) || items[0].Name != "renamed" {
		t.Errorf("non-quantity fields should come from the newest add, got %+v", items[0])
	}
}

func TestAdd_DifferentOptionsStaySeparate(t *testing.T) {
	c, _ := newTestCart(t)

	if err := c.Add(line("p1", 1, "8.99", map[string]string{"Size": "Large"})); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(line("p1", 1, "8.99", map[string]string{"Size": "Small"})); err != nil {
		t.Fatalf("Add: %v", err)
	}

	items := mustItems(t, c)
	if len(items) != 2 {
		t.Fatalf("expected 2 distinct line items, got %d", len(items))
	}
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	c, _ := newTestCart(t)
	if err := c.Add(line("p1", 0, "5.00", nil)); err == nil {
		t.Error("expected an error for quantity 0")
	}
	if len(mustItems(t, c)) != 0 {
		t.Error("rejected add should not change the cart")
	}
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	c, _ := newTestCart(t)
	for _, id := range []string{"p3", "p1", "p2"} {
		if err := c.Add(line(id, 1, "1.00", nil)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	items := mustItems(t, c)
	got := []string{items[0].ProductID, items[1].ProductID, items[2].ProductID}
	want := []string{"p3", "p1", "p2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("insertion order not preserved: got %v, expected %v", got, want)
		}
	}
}

func TestSetQuantity(t *testing.T) {
	c, _ := newTestCart(t)
	if err := c.Add(line("p1", 2, "5.00", nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := c.SetQuantity("p1", 5, nil); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if items := mustItems(t, c); items[0].Quantity != 5 {
		t.Errorf("quantity = %d, expected 5", items[0].Quantity)
	}

	// zero or below removes the item
	if err := c.SetQuantity("p1", 0, nil); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if items := mustItems(t, c); len(items) != 0 {
		t.Errorf("expected empty cart after SetQuantity 0, got %d items", len(items))
	}

	// unknown identity is a no-op
	if err := c.SetQuantity("missing", 3, nil); err != nil {
		t.Errorf("SetQuantity on unknown item: %v", err)
	}
}

func TestRemove_UnknownIsNoOp(t *testing.T) {
	c, _ := newTestCart(t)
	if err := c.Add(line("p1", 1, "5.00", nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Remove("p2", nil); err != nil {
		t.Fatalf("Remove of absent item: %v", err)
	}
	if len(mustItems(t, c)) != 1 {
		t.Error("removing an absent item must not alter other items")
	}
}

func TestRemove_MatchesByIdentity(t *testing.T) {
	c, _ := newTestCart(t)
	if err := c.Add(line("p1", 1, "8.99", map[string]string{"Size": "Large"})); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(line("p1", 1, "8.99", map[string]string{"Size": "Small"})); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Remove("p1", map[string]string{"Size": "Large"}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	items := mustItems(t, c)
	if len(items) != 1 || items[0].Options["Size"] != "Small" {
		t.Errorf("expected only the Small variant to remain, got %+v", items)
	}
}

func TestTotals_HoldAcrossMutations(t *testing.T) {
	c, _ := newTestCart(t)
	checkTotals(t, c)

	steps := []func() error{
		func() error { return c.Add(line("p1", 2, "5.00", nil)) },
		func() error { return c.Add(line("p2", 1, "3.00", nil)) },
		func() error { return c.Add(line("p1", 1, "5.00", nil)) },
		func() error { return c.SetQuantity("p2", 4, nil) },
		func() error { return c.Remove("p1", nil) },
		func() error { return c.Add(line("p3", 2, "1.50", map[string]string{"Size": "Large"})) },
		func() error { return c.SetQuantity("p3", 0, map[string]string{"Size": "Large"}) },
		func() error { return c.Clear() },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		checkTotals(t, c)
	}
}

func TestLoad_MalformedCartSelfHeals(t *testing.T) {
	c, store := newTestCart(t)

	// a stored value that is not an array of line items
	if err := store.Put(Key("client-1"), "not a cart"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	items := mustItems(t, c)
	if len(items) != 0 {
		t.Fatalf("expected empty cart after malformed read, got %d items", len(items))
	}

	// the corrupted value must have been overwritten with a valid empty cart
	var healed []models.CartLineItem
	if err := store.Get(Key("client-1"), &healed); err != nil {
		t.Fatalf("healed value still unreadable: %v", err)
	}
	if len(healed) != 0 {
		t.Errorf("healed cart should be empty, got %d items", len(healed))
	}
}

func TestLoad_InvalidLineItemResets(t *testing.T) {
	c, store := newTestCart(t)

	bad := []models.CartLineItem{{ProductID: "p1", Name: "x", Quantity: -2}}
	if err := store.Put(Key("client-1"), bad); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if items := mustItems(t, c); len(items) != 0 {
		t.Errorf("cart with an invalid line item should reset to empty, got %d items", len(items))
	}
}

func TestCart_SurvivesReload(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	c := New(store, "client-1")
	if err := c.Add(line("p1", 2, "5.00", nil)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// a fresh aggregate over the same store sees the same cart
	reloaded := New(store, "client-1")
	if items := mustItems(t, reloaded); len(items) != 1 || items[0].Quantity != 2 {
		t.Errorf("reloaded cart = %+v, expected the persisted item", items)
	}

	// carts are scoped per client
	other := New(store, "client-2")
	if items := mustItems(t, other); len(items) != 0 {
		t.Errorf("another client's cart should be empty, got %d items", len(items))
	}
}

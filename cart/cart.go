// Package cart implements the per-client cart aggregate. Every mutation is
// persisted to the durable store before it returns.
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/storage"
)

const keyPrefix = "cart:"

// Key returns the storage key holding the given client's cart.
func Key(clientID string) string {
	return keyPrefix + clientID
}

type Cart struct {
	store storage.Store
	key   string
	log   *logrus.Entry
}

func New(store storage.Store, clientID string) *Cart {
	return &Cart{
		store: store,
		key:   Key(clientID),
		log:   logrus.WithField("component", "cart"),
	}
}

// Items returns the current line items in insertion order. A missing cart is
// an empty cart; a malformed one is logged and replaced with a persisted
// empty cart.
func (c *Cart) Items() ([]models.CartLineItem, error) {
	return c.load()
}

// Add merges the item into the cart. An existing line item with the same
// identity key absorbs the new quantity and takes the new item's other fields;
// otherwise the item is appended, preserving insertion order.
func (c *Cart) Add(item models.CartLineItem) error {
	if item.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	items, err := c.load()
	if err != nil {
		return err
	}
	key := ComputeKey(item.ProductID, item.Options)
	for i, existing := range items {
		if ComputeKey(existing.ProductID, existing.Options) == key {
			merged := item.Clone()
			merged.Quantity += existing.Quantity
			items[i] = merged
			return c.save(items)
		}
	}
	return c.save(append(items, item.Clone()))
}

// Remove deletes the line item matching the identity key. Removing an absent
// item is a no-op.
func (c *Cart) Remove(productID string, options map[string]string) error {
	items, err := c.load()
	if err != nil {
		return err
	}
	key := ComputeKey(productID, options)
	for i, existing := range items {
		if ComputeKey(existing.ProductID, existing.Options) == key {
			return c.save(append(items[:i], items[i+1:]...))
		}
	}
	return nil
}

// SetQuantity overwrites the matching item's quantity. A quantity of zero or
// below removes the item instead. Unknown identities are a no-op.
func (c *Cart) SetQuantity(productID string, quantity int, options map[string]string) error {
	if quantity <= 0 {
		return c.Remove(productID, options)
	}
	items, err := c.load()
	if err != nil {
		return err
	}
	key := ComputeKey(productID, options)
	for i, existing := range items {
		if ComputeKey(existing.ProductID, existing.Options) == key {
			items[i].Quantity = quantity
			return c.save(items)
		}
	}
	return nil
}

func (c *Cart) Clear() error {
	return c.save([]models.CartLineItem{})
}

// TotalItems is the sum of all line item quantities, recomputed on every call.
func (c *Cart) TotalItems() (int, error) {
	items, err := c.load()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total, nil
}

// TotalPrice is the sum of price times quantity over all line items,
// recomputed on every call.
func (c *Cart) TotalPrice() (decimal.Decimal, error) {
	items, err := c.load()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

func (c *Cart) load() ([]models.CartLineItem, error) {
	var items []models.CartLineItem
	err := c.store.Get(c.key, &items)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return []models.CartLineItem{}, nil
	case errors.Is(err, storage.ErrMalformed):
		return c.reset("malformed cart in storage")
	case err != nil:
		return nil, err
	}
	for _, item := range items {
		if !item.Valid() {
			return c.reset("cart contains an invalid line item")
		}
	}
	return items, nil
}

// reset self-heals a bad stored cart by persisting an empty one.
func (c *Cart) reset(reason string) ([]models.CartLineItem, error) {
	c.log.WithField("key", c.key).Warn(reason + ", resetting to empty")
	empty := []models.CartLineItem{}
	if err := c.store.Put(c.key, empty); err != nil {
		return nil, fmt.Errorf("reset cart: %w", err)
	}
	return empty, nil
}

func (c *Cart) save(items []models.CartLineItem) error {
	if err := c.store.Put(c.key, items); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

package models

import (
	"github.com/shopspring/decimal"
)

// CartLineItem is one row in a cart or order: a product, its selected
// customizations and a quantity. Name, price and image are denormalized
// snapshots taken when the item was added.
type CartLineItem struct {
	ProductID string            `json:"id"`
	Name      string            `json:"name"`
	Price     decimal.Decimal   `json:"price"`
	Quantity  int               `json:"quantity"`
	Image     string            `json:"image,omitempty"`
	Options   map[string]string `json:"options,omitempty"`
}

// Valid reports whether the line item passes the basic shape check applied to
// persisted carts: non-empty product id and name, quantity of at least one,
// non-negative price.
func (li CartLineItem) Valid() bool {
	return li.ProductID != "" && li.Name != "" && li.Quantity >= 1 && !li.Price.IsNegative()
}

// Clone returns a copy that does not share the options map with the receiver.
func (li CartLineItem) Clone() CartLineItem {
	out := li
	if li.Options != nil {
		out.Options = make(map[string]string, len(li.Options))
		for k, v := range li.Options {
			out.Options[k] = v
		}
	}
	return out
}

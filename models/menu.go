package models

import (
	"github.com/shopspring/decimal"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OptionChoice is one selectable choice within an option group. Price is the
// delta added to the item's base price when the choice is selected.
type OptionChoice struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type OptionGroup struct {
	Name    string         `json:"name"`
	Choices []OptionChoice `json:"choices"`
}

type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  string          `json:"category"`
	Featured    bool            `json:"featured"`
	Options     []OptionGroup   `json:"options,omitempty"`
}

// MenuItemPatch carries a partial update; nil fields are left untouched.
type MenuItemPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	CategoryID  *string          `json:"category,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
	Options     *[]OptionGroup   `json:"options,omitempty"`
}

// Apply merges the patch onto the item.
func (p MenuItemPatch) Apply(item MenuItem) MenuItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.CategoryID != nil {
		item.CategoryID = *p.CategoryID
	}
	if p.Featured != nil {
		item.Featured = *p.Featured
	}
	if p.Options != nil {
		item.Options = *p.Options
	}
	return item
}

// EffectivePrice is the base price plus the delta of every selected choice.
// Selections that do not match one of the item's option groups or choices
// contribute nothing.
func (m MenuItem) EffectivePrice(selected map[string]string) decimal.Decimal {
	price := m.Price
	for _, group := range m.Options {
		choiceName, ok := selected[group.Name]
		if !ok {
			continue
		}
		for _, choice := range group.Choices {
			if choice.Name == choiceName {
				price = price.Add(choice.Price)
				break
			}
		}
	}
	return price
}

// Package catalog exposes the menu behind a single interface with two
// backends: the default file-store one and a Postgres one, selected by
// configuration.
package catalog

import (
	"errors"
	"strings"

	"github.com/sufra-dev/sufra/models"
)

var ErrNotFound = errors.New("catalog: menu item not found")

type Catalog interface {
	List() ([]models.MenuItem, error)
	ListByCategory(categoryID string) ([]models.MenuItem, error)
	ListFeatured() ([]models.MenuItem, error)
	GetByID(id string) (models.MenuItem, error)

	// Add validates the item, assigns it a fresh id and prepends it, so the
	// catalog lists most-recently-added first.
	Add(item models.MenuItem) (models.MenuItem, error)
	// Update shallow-merges the patch onto the stored item.
	Update(id string, patch models.MenuItemPatch) (models.MenuItem, error)
	// Delete reports whether a removal occurred.
	Delete(id string) (bool, error)

	Categories() ([]models.Category, error)

	// Subscribe registers fn to run after every catalog change, so other open
	// views can refresh. The returned function cancels the subscription.
	Subscribe(fn func()) (cancel func())
}

// validateNewItem reports the first failing field, matching the admin form's
// one-error-at-a-time flow.
func validateNewItem(item models.MenuItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return errors.New("menu item name is required")
	case strings.TrimSpace(item.Description) == "":
		return errors.New("menu item description is required")
	case strings.TrimSpace(item.Image) == "":
		return errors.New("menu item image is required")
	case strings.TrimSpace(item.CategoryID) == "":
		return errors.New("menu item category is required")
	case !item.Price.IsPositive():
		return errors.New("menu item price must be greater than zero")
	}
	return nil
}

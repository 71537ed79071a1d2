package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/storage"
)

const menuKey = "menuItems"

// Local serves the catalog out of the durable key-value store.
type Local struct {
	store storage.Store
	log   *logrus.Entry
}

// NewLocal opens the catalog, seeding the default menu when the stored
// collection is absent or malformed.
func NewLocal(store storage.Store) (*Local, error) {
	l := &Local{
		store: store,
		log:   logrus.WithField("component", "catalog"),
	}
	var items []models.MenuItem
	err := store.Get(menuKey, &items)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrMalformed) {
		if errors.Is(err, storage.ErrMalformed) {
			l.log.Warn("malformed menu collection, reseeding defaults")
		}
		if err := store.Put(menuKey, seedMenu()); err != nil {
			return nil, fmt.Errorf("seed menu: %w", err)
		}
	} else if err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Local) List() ([]models.MenuItem, error) {
	return l.load()
}

func (l *Local) ListByCategory(categoryID string) ([]models.MenuItem, error) {
	items, err := l.load()
	if err != nil {
		return nil, err
	}
	matched := make([]models.MenuItem, 0)
	for _, item := range items {
		if item.CategoryID == categoryID {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (l *Local) ListFeatured() ([]models.MenuItem, error) {
	items, err := l.load()
	if err != nil {
		return nil, err
	}
	matched := make([]models.MenuItem, 0)
	for _, item := range items {
		if item.Featured {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (l *Local) GetByID(id string) (models.MenuItem, error) {
	items, err := l.load()
	if err != nil {
		return models.MenuItem{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, ErrNotFound
}

func (l *Local) Add(item models.MenuItem) (models.MenuItem, error) {
	if err := validateNewItem(item); err != nil {
		return models.MenuItem{}, err
	}
	items, err := l.load()
	if err != nil {
		return models.MenuItem{}, err
	}
	item.ID = uuid.NewString()
	items = append([]models.MenuItem{item}, items...)
	if err := l.save(items); err != nil {
		return models.MenuItem{}, err
	}
	l.log.WithField("item_id", item.ID).Info("menu item added")
	return item, nil
}

func (l *Local) Update(id string, patch models.MenuItemPatch) (models.MenuItem, error) {
	items, err := l.load()
	if err != nil {
		return models.MenuItem{}, err
	}
	for i, item := range items {
		if item.ID == id {
			items[i] = patch.Apply(item)
			if err := l.save(items); err != nil {
				return models.MenuItem{}, err
			}
			return items[i], nil
		}
	}
	return models.MenuItem{}, ErrNotFound
}

func (l *Local) Delete(id string) (bool, error) {
	items, err := l.load()
	if err != nil {
		return false, err
	}
	for i, item := range items {
		if item.ID == id {
			if err := l.save(append(items[:i], items[i+1:]...)); err != nil {
				return false, err
			}
			l.log.WithField("item_id", id).Info("menu item deleted")
			return true, nil
		}
	}
	return false, nil
}

func (l *Local) Categories() ([]models.Category, error) {
	return seedCategories(), nil
}

// Subscribe piggybacks on the store's change signal, filtered to the menu key.
func (l *Local) Subscribe(fn func()) func() {
	return l.store.Subscribe(func(key string) {
		if key == menuKey {
			fn()
		}
	})
}

func (l *Local) load() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := l.store.Get(menuKey, &items)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return []models.MenuItem{}, nil
	case errors.Is(err, storage.ErrMalformed):
		l.log.Warn("malformed menu collection, reseeding defaults")
		seeded := seedMenu()
		if err := l.store.Put(menuKey, seeded); err != nil {
			return nil, fmt.Errorf("reseed menu: %w", err)
		}
		return seeded, nil
	case err != nil:
		return nil, err
	}
	return items, nil
}

func (l *Local) save(items []models.MenuItem) error {
	if err := l.store.Put(menuKey, items); err != nil {
		return fmt.Errorf("persist menu: %w", err)
	}
	return nil
}

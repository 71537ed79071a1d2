package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sufra-dev/sufra/models"
)

// Postgres serves the catalog from a Postgres database. Change notifications
// are process-local: another process writing the same database is not
// observed.
type Postgres struct {
	db  *sql.DB
	log *logrus.Entry

	mu   sync.Mutex
	subs map[int]func()
	next int
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{
		db:   db,
		log:  logrus.WithField("component", "catalog"),
		subs: make(map[int]func()),
	}
}

const itemColumns = `id, name, description, price, image, category_id, featured, options`

func (p *Postgres) List() ([]models.MenuItem, error) {
	return p.query(`SELECT ` + itemColumns + ` FROM menu_items ORDER BY created_at DESC`)
}

func (p *Postgres) ListByCategory(categoryID string) ([]models.MenuItem, error) {
	return p.query(`SELECT `+itemColumns+` FROM menu_items WHERE category_id = $1 ORDER BY created_at DESC`, categoryID)
}

func (p *Postgres) ListFeatured() ([]models.MenuItem, error) {
	return p.query(`SELECT ` + itemColumns + ` FROM menu_items WHERE featured ORDER BY created_at DESC`)
}

func (p *Postgres) GetByID(id string) (models.MenuItem, error) {
	row := p.db.QueryRow(`SELECT `+itemColumns+` FROM menu_items WHERE id = $1`, id)
	item, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MenuItem{}, ErrNotFound
	}
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("query menu item: %w", err)
	}
	return item, nil
}

func (p *Postgres) Add(item models.MenuItem) (models.MenuItem, error) {
	if err := validateNewItem(item); err != nil {
		return models.MenuItem{}, err
	}
	options, err := json.Marshal(item.Options)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("encode options: %w", err)
	}
	item.ID = uuid.NewString()
	_, err = p.db.Exec(`
		INSERT INTO menu_items (id, name, description, price, image, category_id, featured, options)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, item.Name, item.Description, item.Price, item.Image, item.CategoryID, item.Featured, options)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("insert menu item: %w", err)
	}
	p.log.WithField("item_id", item.ID).Info("menu item added")
	p.notify()
	return item, nil
}

func (p *Postgres) Update(id string, patch models.MenuItemPatch) (models.MenuItem, error) {
	existing, err := p.GetByID(id)
	if err != nil {
		return models.MenuItem{}, err
	}
	merged := patch.Apply(existing)
	options, err := json.Marshal(merged.Options)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("encode options: %w", err)
	}
	_, err = p.db.Exec(`
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, image = $5, category_id = $6, featured = $7, options = $8
		WHERE id = $1
	`, id, merged.Name, merged.Description, merged.Price, merged.Image, merged.CategoryID, merged.Featured, options)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("update menu item: %w", err)
	}
	p.notify()
	return merged, nil
}

func (p *Postgres) Delete(id string) (bool, error) {
	result, err := p.db.Exec(`DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete menu item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		p.log.WithField("item_id", id).Info("menu item deleted")
		p.notify()
	}
	return affected > 0, nil
}

func (p *Postgres) Categories() ([]models.Category, error) {
	rows, err := p.db.Query(`SELECT id, name FROM menu_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("read category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (p *Postgres) Subscribe(fn func()) func() {
	p.mu.Lock()
	id := p.next
	p.next++
	p.subs[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Postgres) notify() {
	p.mu.Lock()
	fns := make([]func(), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (p *Postgres) query(query string, args ...interface{}) ([]models.MenuItem, error) {
	rows, err := p.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("read menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(scan func(...interface{}) error) (models.MenuItem, error) {
	var item models.MenuItem
	var options []byte
	err := scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Image, &item.CategoryID, &item.Featured, &options)
	if err != nil {
		return models.MenuItem{}, err
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &item.Options); err != nil {
			return models.MenuItem{}, fmt.Errorf("decode options: %w", err)
		}
	}
	return item, nil
}

// Package orders implements the order factory and its persisted, queryable
// repository.
package orders

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/settings"
	"github.com/sufra-dev/sufra/storage"
)

const ordersKey = "allOrders"

var ErrNotFound = errors.New("orders: order not found")

// ValidationErrors maps a field name to a human-readable message, so callers
// can highlight every invalid field at once.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-()]{5,19}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func validateCustomer(info models.CustomerInfo) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(info.Name) == "" {
		errs["name"] = "name is required"
	}
	phone := strings.TrimSpace(info.Phone)
	switch {
	case phone == "":
		errs["phone"] = "phone is required"
	case !phonePattern.MatchString(phone):
		errs["phone"] = "phone number looks invalid"
	}
	if strings.TrimSpace(info.Address) == "" {
		errs["address"] = "address is required"
	}
	if info.Email != "" && !emailPattern.MatchString(info.Email) {
		errs["email"] = "email address looks invalid"
	}
	return errs
}

type Repository struct {
	store    storage.Store
	settings *settings.Store
	log      *logrus.Entry

	// injectable for tests
	now     func() time.Time
	randInt func(n int) int
}

func NewRepository(store storage.Store, settings *settings.Store) *Repository {
	return &Repository{
		store:    store,
		settings: settings,
		log:      logrus.WithField("component", "orders"),
		now:      time.Now,
		randInt:  rand.Intn,
	}
}

// Create validates the customer info, snapshots the given line items and
// appends a new Pending order. Validation failures come back as
// ValidationErrors. The caller owns clearing the cart, and only after a
// successful return.
func (r *Repository) Create(clientID string, items []models.CartLineItem, info models.CustomerInfo) (models.Order, error) {
	errs := validateCustomer(info)
	if len(items) == 0 {
		errs["items"] = "cannot create an order from an empty cart"
	}
	if len(errs) > 0 {
		return models.Order{}, errs
	}

	all, err := r.load()
	if err != nil {
		return models.Order{}, err
	}

	snapshot := make([]models.CartLineItem, len(items))
	total := decimal.Zero
	for i, item := range items {
		snapshot[i] = item.Clone()
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	cfg, err := r.settings.Get()
	if err != nil {
		return models.Order{}, fmt.Errorf("read settings: %w", err)
	}

	now := r.now()
	id, err := r.generateID(now, all)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		ID:          id,
		ClientID:    clientID,
		Items:       snapshot,
		Customer:    info,
		Status:      models.StatusPending,
		TotalPrice:  total,
		DeliveryFee: cfg.DeliveryFee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	all = append(all, order)
	if err := r.save(all); err != nil {
		return models.Order{}, err
	}
	r.log.WithFields(logrus.Fields{"order_id": id, "items": len(snapshot)}).Info("order created")
	return order, nil
}

// All returns every order, most recent first.
func (r *Repository) All() ([]models.Order, error) {
	all, err := r.load()
	if err != nil {
		return nil, err
	}
	sortByRecency(all)
	return all, nil
}

func (r *Repository) ByID(id string) (models.Order, error) {
	all, err := r.load()
	if err != nil {
		return models.Order{}, err
	}
	for _, order := range all {
		if order.ID == id {
			return order, nil
		}
	}
	return models.Order{}, ErrNotFound
}

func (r *Repository) ByStatus(status models.OrderStatus) ([]models.Order, error) {
	all, err := r.load()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Order, 0)
	for _, order := range all {
		if order.Status == status {
			matched = append(matched, order)
		}
	}
	sortByRecency(matched)
	return matched, nil
}

// ByClient returns the orders created by one client session, most recent
// first. Customers read their own orders through this query; there is no
// separate per-customer copy to drift out of sync.
func (r *Repository) ByClient(clientID string) ([]models.Order, error) {
	all, err := r.load()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Order, 0)
	for _, order := range all {
		if order.ClientID == clientID {
			matched = append(matched, order)
		}
	}
	sortByRecency(matched)
	return matched, nil
}

// UpdateStatus overwrites the order's status and bumps its UpdatedAt. Any
// valid status may follow any other; operational gating belongs to callers.
// Unknown ids return ErrNotFound and leave the repository unchanged.
func (r *Repository) UpdateStatus(id string, status models.OrderStatus) (models.Order, error) {
	if !status.IsValid() {
		return models.Order{}, fmt.Errorf("unknown order status %q", status)
	}
	all, err := r.load()
	if err != nil {
		return models.Order{}, err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].Status = status
			all[i].UpdatedAt = r.now()
			if err := r.save(all); err != nil {
				return models.Order{}, err
			}
			r.log.WithFields(logrus.Fields{"order_id": id, "status": status}).Info("order status updated")
			return all[i], nil
		}
	}
	return models.Order{}, ErrNotFound
}

// generateID allocates an unused ORD-YYMMDD-NNN id. The 3-digit suffix space
// is small, so after a few random draws it scans the whole day's space from a
// random offset and fails only when all 1000 ids are taken.
func (r *Repository) generateID(now time.Time, existing []models.Order) (string, error) {
	taken := make(map[string]bool, len(existing))
	for _, order := range existing {
		taken[order.ID] = true
	}
	prefix := "ORD-" + now.Format("060102") + "-"
	for i := 0; i < 16; i++ {
		id := fmt.Sprintf("%s%03d", prefix, r.randInt(1000))
		if !taken[id] {
			return id, nil
		}
	}
	offset := r.randInt(1000)
	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("%s%03d", prefix, (offset+i)%1000)
		if !taken[id] {
			return id, nil
		}
	}
	return "", fmt.Errorf("order id space exhausted for %s", now.Format("2006-01-02"))
}

func (r *Repository) load() ([]models.Order, error) {
	var all []models.Order
	err := r.store.Get(ordersKey, &all)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return []models.Order{}, nil
	case errors.Is(err, storage.ErrMalformed):
		r.log.Warn("malformed orders collection, resetting to empty")
		if err := r.store.Put(ordersKey, []models.Order{}); err != nil {
			return nil, fmt.Errorf("reset orders: %w", err)
		}
		return []models.Order{}, nil
	case err != nil:
		return nil, err
	}
	return all, nil
}

func (r *Repository) save(all []models.Order) error {
	if err := r.store.Put(ordersKey, all); err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}
	return nil
}

func sortByRecency(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

package repo

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

type InMemoryOrderRepository struct {
	store *InMemoryStore
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return NewInMemoryStore().Orders()
}

func sortNewestFirst(orders []models.Order) []models.Order {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func matchesOrderFilter(o models.Order, of OrderFilter) bool {
	if of.Search != "" {
		term := strings.ToLower(of.Search)
		if !strings.Contains(strings.ToLower(o.CustomerName), term) &&
			!strings.Contains(strings.ToLower(o.CustomerEmail), term) &&
			!strings.Contains(strings.ToLower(o.OrderNumber), term) {
			return false
		}
	}
	if of.Status != "" && o.Status != of.Status {
		return false
	}
	if of.Type != "" && o.Type != of.Type {
		return false
	}
	return true
}

func newOrderNumber(id string) string {
	return fmt.Sprintf("ORD-%s", strings.ToUpper(id[:8]))
}

func (r *InMemoryOrderRepository) Create(order models.Order) (models.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order.ID = uuid.NewString()
	if order.OrderNumber == "" {
		order.OrderNumber = newOrderNumber(order.ID)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}
	r.store.orders = append(r.store.orders, order)
	return order, nil
}

// GetAll returns the account's orders, newest first.
func (r *InMemoryOrderRepository) GetAll(userID int) ([]models.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortNewestFirst(ownedBy(r.store.orders, userID, func(o models.Order) int { return o.UserID })), nil
}

func (r *InMemoryOrderRepository) GetByID(userID int, id string) (models.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, o := range r.store.orders {
		if o.ID == id && o.UserID == userID {
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Update(order models.Order) (models.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, o := range r.store.orders {
		if o.ID == order.ID && o.UserID == order.UserID {
			order.OrderNumber = o.OrderNumber
			order.CreatedAt = o.CreatedAt
			order.Items = o.Items
			order.UpdatedAt = time.Now()
			r.store.orders[i] = order
			return order, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) UpdateStatus(userID int, id string, status models.OrderStatus) (models.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, o := range r.store.orders {
		if o.ID == id && o.UserID == userID {
			o.Status = status
			o.UpdatedAt = time.Now()
			r.store.orders[i] = o
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Delete(userID int, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, o := range r.store.orders {
		if o.ID == id && o.UserID == userID {
			r.store.orders = append(r.store.orders[:i], r.store.orders[i+1:]...)
			return nil
		}
	}
	return ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Filter(userID int, of OrderFilter) ([]models.Order, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := []models.Order{}
	for _, o := range r.store.orders {
		if o.UserID == userID && matchesOrderFilter(o, of) {
			filtered = append(filtered, o)
		}
	}

	page, total := paginate(sortNewestFirst(filtered), of.Offset, of.Limit)
	return page, total, nil
}

func (r *InMemoryOrderRepository) Clear() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders = []models.Order{}
}

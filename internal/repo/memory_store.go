package repo

import (
	"sync"

	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

// InMemoryStore keeps every account's records behind one lock so a snapshot
// never mixes states from before and after a write.
type InMemoryStore struct {
	mu        sync.RWMutex
	products  []models.Product
	orders    []models.Order
	suppliers []models.Supplier
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products:  []models.Product{},
		orders:    []models.Order{},
		suppliers: []models.Supplier{},
	}
}

func (s *InMemoryStore) Products() *InMemoryProductRepository {
	return &InMemoryProductRepository{store: s}
}

func (s *InMemoryStore) Orders() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{store: s}
}

func (s *InMemoryStore) Suppliers() *InMemorySupplierRepository {
	return &InMemorySupplierRepository{store: s}
}

// Snapshot implements SnapshotRepository.
func (s *InMemoryStore) Snapshot(userID int) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Products:  ownedBy(s.products, userID, func(p models.Product) int { return p.UserID }),
		Orders:    sortNewestFirst(ownedBy(s.orders, userID, func(o models.Order) int { return o.UserID })),
		Suppliers: ownedBy(s.suppliers, userID, func(sp models.Supplier) int { return sp.UserID }),
	}, nil
}

// Clear drops every record.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = []models.Product{}
	s.orders = []models.Order{}
	s.suppliers = []models.Supplier{}
}

// ownedBy copies the records that belong to userID.
func ownedBy[T any](items []T, userID int, owner func(T) int) []T {
	out := []T{}
	for _, it := range items {
		if owner(it) == userID {
			out = append(out, it)
		}
	}
	return out
}

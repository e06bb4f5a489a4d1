package repo

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

type InMemorySupplierRepository struct {
	store *InMemoryStore
}

func NewInMemorySupplierRepository() *InMemorySupplierRepository {
	return NewInMemoryStore().Suppliers()
}

func matchesSupplierFilter(s models.Supplier, sf SupplierFilter) bool {
	if sf.Search != "" {
		term := strings.ToLower(sf.Search)
		if !strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.ContactPerson), term) &&
			!strings.Contains(strings.ToLower(s.Email), term) {
			return false
		}
	}
	if sf.Status != "" && s.Status != sf.Status {
		return false
	}
	return true
}

func (r *InMemorySupplierRepository) Create(supplier models.Supplier) (models.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	supplier.ID = uuid.NewString()
	r.store.suppliers = append(r.store.suppliers, supplier)
	return supplier, nil
}

func (r *InMemorySupplierRepository) GetAll(userID int) ([]models.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return ownedBy(r.store.suppliers, userID, func(s models.Supplier) int { return s.UserID }), nil
}

func (r *InMemorySupplierRepository) GetByID(userID int, id string) (models.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.suppliers {
		if s.ID == id && s.UserID == userID {
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Update(supplier models.Supplier) (models.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, s := range r.store.suppliers {
		if s.ID == supplier.ID && s.UserID == supplier.UserID {
			supplier.CreatedAt = s.CreatedAt
			r.store.suppliers[i] = supplier
			return supplier, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Delete(userID int, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, s := range r.store.suppliers {
		if s.ID == id && s.UserID == userID {
			r.store.suppliers = append(r.store.suppliers[:i], r.store.suppliers[i+1:]...)
			return nil
		}
	}
	return ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Filter(userID int, sf SupplierFilter) ([]models.Supplier, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := []models.Supplier{}
	for _, s := range r.store.suppliers {
		if s.UserID == userID && matchesSupplierFilter(s, sf) {
			filtered = append(filtered, s)
		}
	}

	page, total := paginate(filtered, sf.Offset, sf.Limit)
	return page, total, nil
}

func (r *InMemorySupplierRepository) Clear() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.suppliers = []models.Supplier{}
}

package repo

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	store *InMemoryStore
}

// NewInMemoryProductRepository creates a product repository over its own store.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return NewInMemoryStore().Products()
}

func matchesProductFilter(p models.Product, pf ProductFilter) bool {
	if pf.Search != "" {
		term := strings.ToLower(pf.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(strings.ToLower(p.SKU), term) {
			return false
		}
	}
	if pf.Category != "" && !strings.EqualFold(p.Category, pf.Category) {
		return false
	}
	if pf.LowStockOnly && !p.LowStock() {
		return false
	}
	return true
}

func (r *InMemoryProductRepository) Filter(userID int, pf ProductFilter) ([]models.Product, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.store.products {
		if p.UserID == userID && matchesProductFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	page, total := paginate(filtered, pf.Offset, pf.Limit)
	return page, total, nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, p := range r.store.products {
		if p.UserID == product.UserID && product.SKU != "" && p.SKU == product.SKU {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	product.ID = uuid.NewString()
	r.store.products = append(r.store.products, product)
	return product, nil
}

// GetAll retrieves all products of an account.
func (r *InMemoryProductRepository) GetAll(userID int) ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return ownedBy(r.store.products, userID, func(p models.Product) int { return p.UserID }), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(userID int, id string) (models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.products {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.products {
		if p.ID == product.ID && p.UserID == product.UserID {
			product.CreatedAt = p.CreatedAt
			r.store.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(userID int, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.products {
		if p.ID == id && p.UserID == userID {
			r.store.products = append(r.store.products[:i], r.store.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// AdjustQuantity implements ProductRepository.
func (r *InMemoryProductRepository) AdjustQuantity(userID int, id string, delta int) (models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.products {
		if p.ID == id && p.UserID == userID {
			if p.Quantity+delta < 0 {
				return models.Product{}, ErrInvalidQuantityChange
			}
			p.Quantity += delta
			p.UpdatedAt = nowRFC3339()
			r.store.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products = []models.Product{}
}

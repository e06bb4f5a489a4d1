package repo

import "github.com/rogerio-castellano/erp-analytics/internal/models"

// ProductRepository defines the interface for product data operations.
// Every call is scoped to the owning account.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll(userID int) ([]models.Product, error)
	GetByID(userID int, id string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(userID int, id string) error
	AdjustQuantity(userID int, id string, delta int) (models.Product, error)
	Filter(userID int, pf ProductFilter) ([]models.Product, int, error)
}

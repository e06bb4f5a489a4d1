package repo

import "github.com/rogerio-castellano/erp-analytics/internal/models"

type SupplierRepository interface {
	Create(supplier models.Supplier) (models.Supplier, error)
	GetAll(userID int) ([]models.Supplier, error)
	GetByID(userID int, id string) (models.Supplier, error)
	Update(supplier models.Supplier) (models.Supplier, error)
	Delete(userID int, id string) error
	Filter(userID int, sf SupplierFilter) ([]models.Supplier, int, error)
}

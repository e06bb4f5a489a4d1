package repo

import "github.com/rogerio-castellano/erp-analytics/internal/models"

type OrderRepository interface {
	Create(order models.Order) (models.Order, error)
	GetAll(userID int) ([]models.Order, error)
	GetByID(userID int, id string) (models.Order, error)
	Update(order models.Order) (models.Order, error)
	UpdateStatus(userID int, id string, status models.OrderStatus) (models.Order, error)
	Delete(userID int, id string) error
	Filter(userID int, of OrderFilter) ([]models.Order, int, error)
}

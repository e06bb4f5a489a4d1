package repo

import "github.com/rogerio-castellano/erp-analytics/internal/models"

type OrderFilter struct {
	Search string // customer name, customer email or order number
	Status models.OrderStatus
	Type   models.OrderType
	Offset *int
	Limit  *int
}

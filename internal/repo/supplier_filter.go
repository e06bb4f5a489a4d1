package repo

import "github.com/rogerio-castellano/erp-analytics/internal/models"

type SupplierFilter struct {
	Search string // name, contact person or email
	Status models.SupplierStatus
	Offset *int
	Limit  *int
}

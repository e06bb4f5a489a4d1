package repo

import "github.com/rogerio-castellano/erp-analytics/internal/models"

// Snapshot is one account's records read at a single point in time.
type Snapshot struct {
	Products  []models.Product
	Orders    []models.Order
	Suppliers []models.Supplier
}

// SnapshotRepository loads everything the analytics need without interleaving writes.
type SnapshotRepository interface {
	Snapshot(userID int) (Snapshot, error)
}

package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// Snapshot reads the account's products, orders and suppliers inside one
// read-only repeatable-read transaction.
func (r *PostgresSnapshotRepository) Snapshot(userID int) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return Snapshot{}, err
	}
	defer tx.Rollback()

	var s Snapshot
	if s.Products, err = queryProducts(ctx, tx, `SELECT `+productColumns+` FROM products WHERE user_id = $1 ORDER BY created_at DESC`, userID); err != nil {
		return Snapshot{}, err
	}
	if s.Orders, err = queryOrders(ctx, tx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID); err != nil {
		return Snapshot{}, err
	}
	if s.Suppliers, err = querySuppliers(ctx, tx, `SELECT `+supplierColumns+` FROM suppliers WHERE user_id = $1 ORDER BY name`, userID); err != nil {
		return Snapshot{}, err
	}

	return s, tx.Commit()
}

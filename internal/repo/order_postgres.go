package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

const orderColumns = `id, user_id, order_number, type, status, customer_name, customer_email, customer_phone, supplier_id, total, notes, created_at, updated_at`

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.Type, &o.Status, &o.CustomerName, &o.CustomerEmail,
		&o.CustomerPhone, &o.SupplierID, &o.Total, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func queryOrders(ctx context.Context, q queryer, query string, args ...any) ([]models.Order, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Create stores the order and its line items in one transaction.
func (r *PostgresOrderRepository) Create(order models.Order) (models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	order.ID = uuid.NewString()
	if order.OrderNumber == "" {
		order.OrderNumber = newOrderNumber(order.ID)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = tx.ExecContext(ctx, query, order.ID, order.UserID, order.OrderNumber, order.Type, order.Status,
		order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.SupplierID, order.Total, order.Notes,
		order.CreatedAt, order.UpdatedAt)
	if isUniqueViolation(err) {
		return models.Order{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, sku, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, item.ProductID, item.ProductName, item.SKU, item.Quantity, item.UnitPrice)
		if err != nil {
			return models.Order{}, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (r *PostgresOrderRepository) GetAll(userID int) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return queryOrders(ctx, r.db, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresOrderRepository) GetByID(userID int, id string) (models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, sku, quantity, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return models.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.SKU, &item.Quantity, &item.UnitPrice); err != nil {
			return models.Order{}, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

// Update rewrites the order header. Line items and the order number are immutable.
func (r *PostgresOrderRepository) Update(order models.Order) (models.Order, error) {
	query := `
		UPDATE orders
		SET type = $1, status = $2, customer_name = $3, customer_email = $4, customer_phone = $5,
			supplier_id = $6, total = $7, notes = $8, updated_at = $9
		WHERE id = $10 AND user_id = $11
		RETURNING ` + orderColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	updated, err := scanOrder(r.db.QueryRowContext(ctx, query, order.Type, order.Status, order.CustomerName,
		order.CustomerEmail, order.CustomerPhone, order.SupplierID, order.Total, order.Notes, time.Now(),
		order.ID, order.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	return updated, err
}

func (r *PostgresOrderRepository) UpdateStatus(userID int, id string, status models.OrderStatus) (models.Order, error) {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND user_id = $4 RETURNING ` + orderColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, status, time.Now(), id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	return o, err
}

func (r *PostgresOrderRepository) Delete(userID int, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) Filter(userID int, of OrderFilter) ([]models.Order, int, error) {
	conditions := "user_id = $1"
	args := []any{userID}
	argIdx := 2

	if of.Search != "" {
		conditions += fmt.Sprintf(" AND (customer_name ILIKE $%d OR customer_email ILIKE $%d OR order_number ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+of.Search+"%")
		argIdx++
	}
	if of.Status != "" {
		conditions += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, of.Status)
		argIdx++
	}
	if of.Type != "" {
		conditions += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, of.Type)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders WHERE "+conditions, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query, args := appendPagination(`SELECT `+orderColumns+` FROM orders WHERE `+conditions+` ORDER BY created_at DESC`, args, argIdx, of.Offset, of.Limit)
	orders, err := queryOrders(ctx, r.db, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, totalCount, nil
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

const productColumns = `id, user_id, name, sku, description, category, price, cost, quantity, threshold, supplier_id, location, created_at, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.SKU, &p.Description, &p.Category, &p.Price, &p.Cost,
		&p.Quantity, &p.Threshold, &p.SupplierID, &p.Location, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// isUniqueViolation reports a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, p.ID, p.UserID, p.Name, p.SKU, p.Description, p.Category, p.Price, p.Cost,
		p.Quantity, p.Threshold, p.SupplierID, p.Location, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll(userID int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return queryProducts(ctx, r.db, query, userID)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryProducts(ctx context.Context, q queryer, query string, args ...any) ([]models.Product, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(userID int, id string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `
		UPDATE products
		SET name = $1, sku = $2, description = $3, category = $4, price = $5, cost = $6,
			quantity = $7, threshold = $8, supplier_id = $9, location = $10, updated_at = $11
		WHERE id = $12 AND user_id = $13
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query, p.Name, p.SKU, p.Description, p.Category, p.Price, p.Cost,
		p.Quantity, p.Threshold, p.SupplierID, p.Location, p.UpdatedAt, p.ID, p.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return updated, err
}

func (r *PostgresProductRepository) Delete(userID int, id string) error {
	query := `DELETE FROM products WHERE id = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) AdjustQuantity(userID int, id string, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET quantity = quantity + $1, updated_at = $2
		WHERE id = $3 AND user_id = $4 AND quantity + $1 >= 0
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		// tell a missing product apart from a rejected change
		if _, getErr := r.GetByID(userID, id); errors.Is(getErr, ErrProductNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, ErrInvalidQuantityChange
	}
	return p, err
}

func (r *PostgresProductRepository) Filter(userID int, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := productFilterConditions(userID, pf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE " + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` + conditions + ` ORDER BY created_at DESC`
	query, args = appendPagination(query, args, argIdx, pf.Offset, pf.Limit)

	products, err := queryProducts(ctx, r.db, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, totalCount, nil
}

func productFilterConditions(userID int, pf ProductFilter) (string, []any, int) {
	query := "user_id = $1"
	args := []any{userID}
	argIdx := 2

	if pf.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+pf.Search+"%")
		argIdx++
	}
	if pf.Category != "" {
		query += fmt.Sprintf(" AND LOWER(category) = LOWER($%d)", argIdx)
		args = append(args, pf.Category)
		argIdx++
	}
	if pf.LowStockOnly {
		query += " AND quantity <= threshold"
	}

	return query, args, argIdx
}

func appendPagination(query string, args []any, argIdx int, offset, limit *int) (string, []any) {
	if limit != nil && *limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *limit)
		argIdx++
	}
	if offset != nil && *offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *offset)
	}
	return query, args
}

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

const supplierColumns = `id, user_id, name, contact_person, email, phone, address, city, country, payment_terms, status, created_at, updated_at`

type PostgresSupplierRepository struct {
	db *sql.DB
}

func NewPostgresSupplierRepository(db *sql.DB) *PostgresSupplierRepository {
	return &PostgresSupplierRepository{db: db}
}

func scanSupplier(row rowScanner) (models.Supplier, error) {
	var s models.Supplier
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address, &s.City,
		&s.Country, &s.PaymentTerms, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func querySuppliers(ctx context.Context, q queryer, query string, args ...any) ([]models.Supplier, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *PostgresSupplierRepository) Create(s models.Supplier) (models.Supplier, error) {
	query := `INSERT INTO suppliers (` + supplierColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, s.ID, s.UserID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address,
		s.City, s.Country, s.PaymentTerms, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return models.Supplier{}, fmt.Errorf("failed to insert supplier: %w", err)
	}
	return s, nil
}

func (r *PostgresSupplierRepository) GetAll(userID int) ([]models.Supplier, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return querySuppliers(ctx, r.db, `SELECT `+supplierColumns+` FROM suppliers WHERE user_id = $1 ORDER BY name`, userID)
}

func (r *PostgresSupplierRepository) GetByID(userID int, id string) (models.Supplier, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, err := scanSupplier(r.db.QueryRowContext(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Supplier{}, ErrSupplierNotFound
	}
	return s, err
}

func (r *PostgresSupplierRepository) Update(s models.Supplier) (models.Supplier, error) {
	query := `
		UPDATE suppliers
		SET name = $1, contact_person = $2, email = $3, phone = $4, address = $5, city = $6,
			country = $7, payment_terms = $8, status = $9, updated_at = $10
		WHERE id = $11 AND user_id = $12
		RETURNING ` + supplierColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	updated, err := scanSupplier(r.db.QueryRowContext(ctx, query, s.Name, s.ContactPerson, s.Email, s.Phone,
		s.Address, s.City, s.Country, s.PaymentTerms, s.Status, s.UpdatedAt, s.ID, s.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Supplier{}, ErrSupplierNotFound
	}
	return updated, err
}

func (r *PostgresSupplierRepository) Delete(userID int, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

func (r *PostgresSupplierRepository) Filter(userID int, sf SupplierFilter) ([]models.Supplier, int, error) {
	conditions := "user_id = $1"
	args := []any{userID}
	argIdx := 2

	if sf.Search != "" {
		conditions += fmt.Sprintf(" AND (name ILIKE $%d OR contact_person ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+sf.Search+"%")
		argIdx++
	}
	if sf.Status != "" {
		conditions += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, sf.Status)
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM suppliers WHERE "+conditions, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query, args := appendPagination(`SELECT `+supplierColumns+` FROM suppliers WHERE `+conditions+` ORDER BY name`, args, argIdx, sf.Offset, sf.Limit)
	suppliers, err := querySuppliers(ctx, r.db, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return suppliers, totalCount, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockpile/backend/internal/supplier"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var sortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"email":        "email",
	"phone_number": "phone_number",
}

func orderClause(sortBy, sortOrder string) string {
	col, ok := sortColumns[sortBy]
	if !ok || (sortOrder != "asc" && sortOrder != "desc") {
		return ""
	}

	return fmt.Sprintf(" ORDER BY %s %s", col, sortOrder)
}

func (s *Store) ListSuppliers(ctx context.Context, filter supplier.ListFilter) ([]supplier.Supplier, error) {
	query := `SELECT id, name, email, phone_number FROM suppliers WHERE 1 = 1`

	var args []any

	if filter.Search != "" {
		query += " AND name ILIKE $1"

		args = append(args, "%"+filter.Search+"%")
	}

	query += orderClause(filter.SortBy, filter.SortOrder)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []supplier.Supplier

	for rows.Next() {
		var sp supplier.Supplier
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Email, &sp.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}

		suppliers = append(suppliers, sp)
	}

	return suppliers, rows.Err()
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (*supplier.Supplier, error) {
	var sp supplier.Supplier

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone_number FROM suppliers WHERE id = $1`, id,
	).Scan(&sp.ID, &sp.Name, &sp.Email, &sp.PhoneNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, supplier.ErrNotFound
		}

		return nil, fmt.Errorf("getting supplier: %w", err)
	}

	return &sp, nil
}

func (s *Store) CreateSupplier(ctx context.Context, sp *supplier.Supplier) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO suppliers (name, email, phone_number) VALUES ($1, $2, $3) RETURNING id`,
		sp.Name, sp.Email, sp.PhoneNumber,
	).Scan(&sp.ID)
	if err != nil {
		return fmt.Errorf("creating supplier: %w", err)
	}

	return nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sp *supplier.Supplier) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE suppliers SET name = $1, email = $2, phone_number = $3 WHERE id = $4`,
		sp.Name, sp.Email, sp.PhoneNumber, sp.ID,
	)
	if err != nil {
		return fmt.Errorf("updating supplier: %w", err)
	}

	return nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting supplier: %w", err)
	}

	return nil
}

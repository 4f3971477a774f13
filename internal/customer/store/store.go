package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockpile/backend/internal/customer"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// sortColumns is the allow-list of sortable columns; anything else falls back
// to the default order.
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

func (s *Store) ListCustomers(ctx context.Context, filter customer.ListFilter) ([]customer.Customer, error) {
	query := `SELECT id, name, email, phone_number FROM customers WHERE 1 = 1`

	var args []any

	if filter.Search != "" {
		query += " AND name ILIKE $1"

		args = append(args, "%"+filter.Search+"%")
	}

	query += orderClause(filter.SortBy, filter.SortOrder)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer

	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone_number FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO customers (name, email, phone_number) VALUES ($1, $2, $3) RETURNING id`,
		c.Name, c.Email, c.PhoneNumber,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE customers SET name = $1, email = $2, phone_number = $3 WHERE id = $4`,
		c.Name, c.Email, c.PhoneNumber, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	return nil
}

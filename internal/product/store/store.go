package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/stockpile/backend/internal/product"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectProductColumns = `
	p.id, p.category_id, c.name AS category_name, p.name, p.price, p.stock, p.updated_at
`

func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	if err := s.Scan(
		&p.ID, &p.Category.ID, &p.Category.Name, &p.Name, &p.Price, &p.Stock, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

var sortColumns = map[string]string{
	"id":         "p.id",
	"name":       "p.name",
	"price":      "p.price",
	"stock":      "p.stock",
	"updated_at": "p.updated_at",
}

// stockLevelPredicates is the allow-list behind the stock-level filter chips;
// selected levels are OR-combined.
var stockLevelPredicates = map[product.StockLevel]string{
	product.StockEmpty:  "p.stock <= 0",
	product.StockLow:    "p.stock >= 1 AND p.stock < 10",
	product.StockNormal: "p.stock >= 10",
}

func (s *Store) ListProducts(ctx context.Context, filter product.ListFilter) ([]product.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE 1 = 1`

	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (CAST(p.id AS TEXT) ILIKE $%d OR p.name ILIKE $%d OR c.name ILIKE $%d)", n, n, n)
	}

	if len(filter.StockLevels) > 0 {
		var preds []string

		for _, level := range filter.StockLevels {
			if pred, ok := stockLevelPredicates[level]; ok {
				preds = append(preds, pred)
			}
		}

		if len(preds) > 0 {
			query += " AND (" + strings.Join(preds, " OR ") + ")"
		}
	}

	if len(filter.CategoryIDs) > 0 {
		var placeholders []string

		for _, id := range filter.CategoryIDs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}

		query += " AND p.category_id IN (" + strings.Join(placeholders, ", ") + ")"
	}

	if since, ok := filter.UpdatedSince(time.Now()); ok {
		args = append(args, since)
		query += fmt.Sprintf(" AND p.updated_at >= $%d", len(args))
	}

	if col, ok := sortColumns[filter.SortBy]; ok && (filter.SortOrder == "asc" || filter.SortOrder == "desc") {
		query += fmt.Sprintf(" ORDER BY %s %s", col, filter.SortOrder)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, *p)
	}

	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, product.ErrNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product, categoryID int64) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO products (name, category_id, price, stock, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`,
		p.Name, categoryID, p.Price, p.Stock,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, params product.Params) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = $1, category_id = $2, price = $3, stock = $4, updated_at = NOW()
		WHERE id = $5`,
		params.Name, params.CategoryID, params.Price, params.Stock, id,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return nil
}

func (s *Store) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking category: %w", err)
	}

	return exists, nil
}

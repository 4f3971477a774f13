package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stockpile/backend/internal/stats"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// truncUnit translates the grouping granularity for date_trunc. Enum-derived,
// never caller input.
func truncUnit(g stats.Granularity) string {
	if g == stats.ByMonth {
		return "month"
	}

	return "day"
}

func (s *Store) TodaySales(ctx context.Context, since time.Time) (stats.TodaySales, error) {
	var out stats.TodaySales

	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_cost), 0), COUNT(*)
		FROM transactions
		WHERE deleted_at IS NULL AND created_at >= $1`, since,
	).Scan(&out.TotalSales, &out.TotalTransactions)
	if err != nil {
		return stats.TodaySales{}, fmt.Errorf("computing today sales: %w", err)
	}

	return out, nil
}

func (s *Store) Summary(ctx context.Context, since time.Time) (stats.Summary, error) {
	var out stats.Summary

	err := s.db.QueryRowContext(ctx,
		`SELECT (
			SELECT COUNT(DISTINCT sl.product_id)
			FROM stock_logs sl
			JOIN transactions t ON t.id = sl.transaction_id AND t.deleted_at IS NULL
			WHERE sl.init_stock >= 1 AND sl.init_stock < 10 AND sl.created_at >= $1
		), (
			SELECT COUNT(DISTINCT ti.product_id)
			FROM transaction_items ti
			JOIN transactions t ON t.id = ti.transaction_id AND t.deleted_at IS NULL
			WHERE ti.created_at >= $1
		), (
			SELECT COUNT(*)
			FROM transactions
			WHERE deleted_at IS NULL AND created_at >= $1
		)`, since,
	).Scan(&out.LowStockItems, &out.TotalItems, &out.TotalTransactions)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("computing summary: %w", err)
	}

	return out, nil
}

func (s *Store) StockLevels(ctx context.Context) (stats.StockLevels, error) {
	var out stats.StockLevels

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FILTER (WHERE stock <= 0),
			COUNT(*) FILTER (WHERE stock >= 1 AND stock < 10),
			COUNT(*) FILTER (WHERE stock >= 10)
		FROM products`,
	).Scan(&out.Empty, &out.Low, &out.Normal)
	if err != nil {
		return stats.StockLevels{}, fmt.Errorf("computing stock levels: %w", err)
	}

	return out, nil
}

func (s *Store) SaleTotals(ctx context.Context, since time.Time, g stats.Granularity) ([]stats.SalesRow, error) {
	query := fmt.Sprintf(
		`SELECT date_trunc('%[1]s', created_at) AS bucket, SUM(total_cost)
		FROM transactions
		WHERE deleted_at IS NULL AND type = 'sale' AND created_at >= $1
		GROUP BY bucket
		ORDER BY bucket`, truncUnit(g))

	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("loading sale totals: %w", err)
	}
	defer rows.Close()

	var out []stats.SalesRow

	for rows.Next() {
		var row stats.SalesRow
		if err := rows.Scan(&row.Bucket, &row.Total); err != nil {
			return nil, fmt.Errorf("scanning sale totals: %w", err)
		}

		out = append(out, row)
	}

	return out, rows.Err()
}

func (s *Store) TypeCounts(ctx context.Context, since time.Time, g stats.Granularity) ([]stats.TypeCountsRow, error) {
	query := fmt.Sprintf(
		`SELECT date_trunc('%[1]s', created_at) AS bucket,
			COUNT(*) FILTER (WHERE type = 'purchase'),
			COUNT(*) FILTER (WHERE type = 'sale'),
			COUNT(*) FILTER (WHERE type = 'return')
		FROM transactions
		WHERE deleted_at IS NULL AND created_at >= $1
		GROUP BY bucket
		ORDER BY bucket`, truncUnit(g))

	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("loading type counts: %w", err)
	}
	defer rows.Close()

	var out []stats.TypeCountsRow

	for rows.Next() {
		var row stats.TypeCountsRow
		if err := rows.Scan(&row.Bucket, &row.Purchase, &row.Sale, &row.Return); err != nil {
			return nil, fmt.Errorf("scanning type counts: %w", err)
		}

		out = append(out, row)
	}

	return out, rows.Err()
}

func (s *Store) MostUsedProduct(ctx context.Context, since time.Time) (*stats.ProductUsage, error) {
	var usage stats.ProductUsage

	err := s.db.QueryRowContext(ctx,
		`SELECT ti.product_id, p.name, COUNT(*) AS use_count
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id AND t.deleted_at IS NULL
		JOIN products p ON p.id = ti.product_id
		WHERE ti.created_at >= $1
		GROUP BY ti.product_id, p.name
		ORDER BY use_count DESC
		LIMIT 1`, since,
	).Scan(&usage.ProductID, &usage.Name, &usage.Usage)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding most used product: %w", err)
	}

	return &usage, nil
}

func (s *Store) StockTrend(ctx context.Context, productID int64, since time.Time, g stats.Granularity) ([]stats.StockTrendRow, error) {
	// The earliest log per bucket carries the stock level at that point in
	// time.
	query := fmt.Sprintf(
		`SELECT DISTINCT ON (date_trunc('%[1]s', sl.created_at))
			date_trunc('%[1]s', sl.created_at) AS bucket, sl.init_stock
		FROM stock_logs sl
		JOIN transactions t ON t.id = sl.transaction_id AND t.deleted_at IS NULL
		WHERE sl.product_id = $1 AND sl.created_at >= $2
		ORDER BY date_trunc('%[1]s', sl.created_at), sl.created_at`, truncUnit(g))

	rows, err := s.db.QueryContext(ctx, query, productID, since)
	if err != nil {
		return nil, fmt.Errorf("loading stock trend: %w", err)
	}
	defer rows.Close()

	var out []stats.StockTrendRow

	for rows.Next() {
		var row stats.StockTrendRow
		if err := rows.Scan(&row.Bucket, &row.InitStock); err != nil {
			return nil, fmt.Errorf("scanning stock trend: %w", err)
		}

		out = append(out, row)
	}

	return out, rows.Err()
}

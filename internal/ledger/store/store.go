package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]ledger.Transaction, error) {
	query := `SELECT id, created_at, total_cost, type FROM transactions WHERE deleted_at IS NULL`

	var args []any

	if filter.Recent {
		query += " AND created_at >= NOW() - INTERVAL '24 hours'"
	} else {
		args = append(args, filter.WindowMonths)
		query += fmt.Sprintf(" AND created_at >= NOW() - make_interval(months => $%d)", len(args))

		if filter.Type != "" {
			args = append(args, filter.Type)
			query += fmt.Sprintf(" AND type = $%d", len(args))
		}

		if col, ok := filter.SortColumn(); ok {
			query += fmt.Sprintf(" ORDER BY %s %s", col, filter.SortOrder)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction

	for rows.Next() {
		var tx ledger.Transaction
		if err := rows.Scan(&tx.ID, &tx.CreatedAt, &tx.TotalCost, &tx.Type); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	err := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, supplier_id, customer_id, type, total_cost, created_at
		FROM transactions WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&tx.ID, &tx.AccountID, &tx.SupplierID, &tx.CustomerID, &tx.Type, &tx.TotalCost, &tx.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return &tx, nil
}

func (s *Store) ListItems(ctx context.Context, transactionID int64) ([]ledger.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT transaction_id, product_id, unit_name, unit_price, quantity, created_at
		FROM transaction_items WHERE transaction_id = $1 ORDER BY id`, transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []ledger.Item

	for rows.Next() {
		var item ledger.Item
		if err := rows.Scan(
			&item.TransactionID, &item.ProductID, &item.UnitName,
			&item.UnitPrice, &item.Quantity, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *Store) ListStockLogs(ctx context.Context, transactionID int64) ([]ledger.StockLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT transaction_id, product_id, init_stock, change_type, quantity, created_at
		FROM stock_logs WHERE transaction_id = $1 ORDER BY id`, transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing stock logs: %w", err)
	}
	defer rows.Close()

	var logs []ledger.StockLog

	for rows.Next() {
		var log ledger.StockLog
		if err := rows.Scan(
			&log.TransactionID, &log.ProductID, &log.InitStock,
			&log.ChangeType, &log.Quantity, &log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stock log: %w", err)
		}

		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (s *Store) GetAccountSummary(ctx context.Context, id int64) (*ledger.AccountSummary, error) {
	var a ledger.AccountSummary

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, role FROM accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Email, &a.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			// The account may have been removed since; the detail view keeps
			// an empty profile in that case.
			return nil, nil
		}

		return nil, fmt.Errorf("getting account summary: %w", err)
	}

	return &a, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*ledger.Counterparty, error) {
	return s.getCounterparty(ctx, "customers", id)
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (*ledger.Counterparty, error) {
	return s.getCounterparty(ctx, "suppliers", id)
}

func (s *Store) getCounterparty(ctx context.Context, table string, id int64) (*ledger.Counterparty, error) {
	var cp ledger.Counterparty

	// table is one of two literals chosen above, never caller input.
	query := fmt.Sprintf(`SELECT id, name, email, phone_number FROM %s WHERE id = $1`, table)

	err := s.db.QueryRowContext(ctx, query, id).Scan(&cp.ID, &cp.Name, &cp.Email, &cp.PhoneNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting counterparty: %w", err)
	}

	return &cp, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id, deletedBy int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = NOW(), deleted_by = $1
		WHERE id = $2 AND deleted_at IS NULL`,
		deletedBy, id,
	)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

type recordTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (ledger.RecordTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning record tx: %w", err)
	}

	return &recordTx{tx: tx}, nil
}

func (r *recordTx) Commit() error   { return r.tx.Commit() }
func (r *recordTx) Rollback() error { return r.tx.Rollback() }

func (r *recordTx) SupplierExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1)`, id)
}

func (r *recordTx) CustomerExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id)
}

func (r *recordTx) exists(ctx context.Context, query string, id int64) (bool, error) {
	var exists bool

	if err := r.tx.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking existence: %w", err)
	}

	return exists, nil
}

func (r *recordTx) InsertTransaction(ctx context.Context, tx *ledger.Transaction) error {
	err := r.tx.QueryRowContext(ctx,
		`INSERT INTO transactions (account_id, supplier_id, customer_id, type, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`,
		tx.AccountID, tx.SupplierID, tx.CustomerID, tx.Type, tx.TotalCost,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func (r *recordTx) InsertItem(ctx context.Context, item *ledger.Item) error {
	err := r.tx.QueryRowContext(ctx,
		`INSERT INTO transaction_items (transaction_id, product_id, unit_name, unit_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`,
		item.TransactionID, item.ProductID, item.UnitName, item.UnitPrice, item.Quantity,
	).Scan(&item.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction item: %w", err)
	}

	return nil
}

func (r *recordTx) InsertStockLog(ctx context.Context, log *ledger.StockLog) error {
	err := r.tx.QueryRowContext(ctx,
		`INSERT INTO stock_logs (transaction_id, product_id, init_stock, change_type, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`,
		log.TransactionID, log.ProductID, log.InitStock, log.ChangeType, log.Quantity,
	).Scan(&log.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting stock log: %w", err)
	}

	return nil
}

func (r *recordTx) AdjustStock(ctx context.Context, productID int64, quantity int, direction ledger.Direction) (int, string, error) {
	var delta int

	switch direction {
	case ledger.DirectionIn:
		delta = quantity
	case ledger.DirectionOut:
		delta = -quantity
	default:
		return 0, "", apperror.Unprocessablef("Invalid stock_change_type field. Please use one of them: [in, out]")
	}

	var (
		stock int
		name  string
	)

	err := r.tx.QueryRowContext(ctx,
		`UPDATE products SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING stock, name`,
		delta, productID,
	).Scan(&stock, &name)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", apperror.NotFoundf("Product with id %d does not exist", productID)
		}

		return 0, "", fmt.Errorf("adjusting stock: %w", err)
	}

	return stock, name, nil
}

package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/notify"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListTransactions(ctx context.Context, filter ListFilter) ([]Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	ListItems(ctx context.Context, transactionID int64) ([]Item, error)
	ListStockLogs(ctx context.Context, transactionID int64) ([]StockLog, error)
	GetAccountSummary(ctx context.Context, id int64) (*AccountSummary, error)
	GetCustomer(ctx context.Context, id int64) (*Counterparty, error)
	GetSupplier(ctx context.Context, id int64) (*Counterparty, error)
	DeleteTransaction(ctx context.Context, id, deletedBy int64) error

	Begin(ctx context.Context) (RecordTx, error)
}

// RecordTx scopes the multi-statement atomic unit of transaction recording.
// Every method runs on the same database transaction; Commit makes the whole
// unit durable, Rollback discards it.
type RecordTx interface {
	SupplierExists(ctx context.Context, id int64) (bool, error)
	CustomerExists(ctx context.Context, id int64) (bool, error)
	InsertTransaction(ctx context.Context, tx *Transaction) error
	InsertItem(ctx context.Context, item *Item) error
	InsertStockLog(ctx context.Context, log *StockLog) error

	// AdjustStock applies the signed quantity to the product's stock counter
	// and returns the post-mutation stock and the product name.
	AdjustStock(ctx context.Context, productID int64, quantity int, direction Direction) (int, string, error)

	Commit() error
	Rollback() error
}

type Service struct {
	repo         Repository
	notifier     notify.Notifier
	lowThreshold int
	log          *slog.Logger
}

func NewService(repo Repository, notifier notify.Notifier, lowThreshold int, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{repo: repo, notifier: notifier, lowThreshold: lowThreshold, log: log}
}

func validateRecordParams(p RecordParams) error {
	if len(p.Items) < 1 {
		return apperror.Invalidf("At least one item is required in the transaction")
	}

	switch p.Type {
	case TypePurchase:
		if p.SupplierID == nil {
			return apperror.Invalidf("supplier_id is required for [purchase] transactions")
		}

		if p.Direction != DirectionIn {
			return apperror.Unprocessablef("Invalid stock_change_type field. Please use [in]")
		}
	case TypeSale:
		if p.CustomerID == nil {
			return apperror.Invalidf("customer_id is required for [sale] transactions")
		}

		if p.Direction != DirectionOut {
			return apperror.Unprocessablef("Invalid stock_change_type field. Please use [out]")
		}
	case TypeReturn:
		if p.SupplierID == nil || p.CustomerID == nil {
			return apperror.Invalidf("supplier_id and customer_id are required for [return] transactions")
		}

		if !p.Direction.Valid() {
			return apperror.Unprocessablef("Invalid stock_change_type field. Please use one of them: [in, out]")
		}
	default:
		return apperror.Unprocessablef("transaction with type [%s] isn't supported, please use either [purchase], [sale], and [return]", p.Type)
	}

	return nil
}

// Record validates the request and persists the transaction header, its line
// items, its stock logs, and the stock counter mutations as one atomic unit.
// Validation reads run inside the same unit so no partial state can be
// written. Stock alerts are dispatched only after a successful commit.
func (s *Service) Record(ctx context.Context, actorID int64, params RecordParams) error {
	if err := validateRecordParams(params); err != nil {
		return err
	}

	// A sale never references a supplier and a purchase never references a
	// customer. An extraneous id would skip the existence check below and
	// land in the header as an unchecked reference, so drop it.
	switch params.Type {
	case TypeSale:
		params.SupplierID = nil
	case TypePurchase:
		params.CustomerID = nil
	}

	rtx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	defer rtx.Rollback()

	if params.SupplierID != nil {
		exists, err := rtx.SupplierExists(ctx, *params.SupplierID)
		if err != nil {
			return fmt.Errorf("checking supplier: %w", err)
		}

		if !exists {
			return apperror.NotFoundf("Supplier with id %d does not exist", *params.SupplierID)
		}
	}

	if params.CustomerID != nil {
		exists, err := rtx.CustomerExists(ctx, *params.CustomerID)
		if err != nil {
			return fmt.Errorf("checking customer: %w", err)
		}

		if !exists {
			return apperror.NotFoundf("Customer with id %d does not exist", *params.CustomerID)
		}
	}

	tx := &Transaction{
		AccountID:  actorID,
		SupplierID: params.SupplierID,
		CustomerID: params.CustomerID,
		Type:       params.Type,
		TotalCost:  params.TotalCost,
	}
	if err := rtx.InsertTransaction(ctx, tx); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	var alerts []StockAlert

	for _, item := range params.Items {
		if err := rtx.InsertItem(ctx, &Item{
			TransactionID: tx.ID,
			ProductID:     item.ProductID,
			UnitName:      item.UnitName,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
		}); err != nil {
			return fmt.Errorf("inserting item: %w", err)
		}

		if err := rtx.InsertStockLog(ctx, &StockLog{
			TransactionID: tx.ID,
			ProductID:     item.ProductID,
			InitStock:     item.Stock,
			ChangeType:    params.Direction,
			Quantity:      item.Quantity,
		}); err != nil {
			return fmt.Errorf("inserting stock log: %w", err)
		}

		newStock, productName, err := rtx.AdjustStock(ctx, item.ProductID, item.Quantity, params.Direction)
		if err != nil {
			return fmt.Errorf("adjusting stock: %w", err)
		}

		if newStock <= 0 {
			alerts = append(alerts, StockAlert{ProductName: productName, Empty: true})
		} else if newStock < s.lowThreshold {
			alerts = append(alerts, StockAlert{ProductName: productName})
		}
	}

	if err := rtx.Commit(); err != nil {
		return fmt.Errorf("committing record: %w", err)
	}

	if len(alerts) > 0 {
		go s.dispatchAlerts(alerts)
	}

	return nil
}

func (s *Service) dispatchAlerts(alerts []StockAlert) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("stock alert dispatch panicked", "panic", r)
		}
	}()

	for _, alert := range alerts {
		if alert.Empty {
			s.notifier.NotifyEmptyStock(alert.ProductName)
			continue
		}

		s.notifier.NotifyLowStock(alert.ProductName)
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Transaction, error) {
	if !ValidWindowMonths[filter.WindowMonths] {
		filter.WindowMonths = DefaultWindowMonths
	}

	return s.repo.ListTransactions(ctx, filter)
}

// Get assembles the full detail view for one transaction. The populated
// counterparty follows the first stock log's direction; the other side stays
// nil and is rendered as an empty object by the HTTP layer.
func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Transaction: *tx}

	detail.Account, err = s.repo.GetAccountSummary(ctx, tx.AccountID)
	if err != nil {
		return nil, fmt.Errorf("loading account: %w", err)
	}

	detail.Items, err = s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	detail.StockLogs, err = s.repo.ListStockLogs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading stock logs: %w", err)
	}

	if len(detail.StockLogs) > 0 {
		switch detail.StockLogs[0].ChangeType {
		case DirectionOut:
			if tx.CustomerID != nil {
				detail.Customer, err = s.repo.GetCustomer(ctx, *tx.CustomerID)
				if err != nil {
					return nil, fmt.Errorf("loading customer: %w", err)
				}
			}
		case DirectionIn:
			if tx.SupplierID != nil {
				detail.Supplier, err = s.repo.GetSupplier(ctx, *tx.SupplierID)
				if err != nil {
					return nil, fmt.Errorf("loading supplier: %w", err)
				}
			}
		}
	}

	return detail, nil
}

// Delete is logical: the row is kept for the audit trail.
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	return s.repo.DeleteTransaction(ctx, id, actorID)
}

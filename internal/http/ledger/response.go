package ledger

import (
	"time"

	"github.com/stockpile/backend/internal/ledger"
)

type transactionResponse struct {
	ID         int64       `json:"id"`
	AccountID  int64       `json:"account_id"`
	SupplierID *int64      `json:"supplier_id"`
	CustomerID *int64      `json:"customer_id"`
	Type       ledger.Type `json:"type"`
	TotalCost  float64     `json:"total_cost"`
	CreatedAt  time.Time   `json:"created_at"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:         tx.ID,
		AccountID:  tx.AccountID,
		SupplierID: tx.SupplierID,
		CustomerID: tx.CustomerID,
		Type:       tx.Type,
		TotalCost:  tx.TotalCost.InexactFloat64(),
		CreatedAt:  tx.CreatedAt,
	}
}

func toResponseList(txs []ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i := range txs {
		resp[i] = toResponse(&txs[i])
	}

	return resp
}

type accountResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type counterpartyResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type itemResponse struct {
	ProductID int64     `json:"product_id"`
	UnitName  string    `json:"unit_name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type stockLogResponse struct {
	ProductID  int64            `json:"product_id"`
	InitStock  int              `json:"init_stock"`
	ChangeType ledger.Direction `json:"change_type"`
	Quantity   int              `json:"quantity"`
	CreatedAt  time.Time        `json:"created_at"`
}

type detailResponse struct {
	transactionResponse

	Account   any                `json:"account"`
	Customer  any                `json:"customer"`
	Supplier  any                `json:"supplier"`
	Items     []itemResponse     `json:"items"`
	StockLogs []stockLogResponse `json:"stock_logs"`
}

// toDetailResponse renders the assembled view. Absent account and
// counterparty sides come out as empty objects so chart and table clients can
// index fields unconditionally.
func toDetailResponse(d *ledger.Detail) detailResponse {
	resp := detailResponse{
		transactionResponse: toResponse(&d.Transaction),
		Account:             struct{}{},
		Customer:            struct{}{},
		Supplier:            struct{}{},
		Items:               make([]itemResponse, len(d.Items)),
		StockLogs:           make([]stockLogResponse, len(d.StockLogs)),
	}

	if d.Account != nil {
		resp.Account = accountResponse{
			ID:    d.Account.ID,
			Name:  d.Account.Name,
			Email: d.Account.Email,
			Role:  d.Account.Role,
		}
	}

	if d.Customer != nil {
		resp.Customer = counterpartyResponse{
			ID:          d.Customer.ID,
			Name:        d.Customer.Name,
			Email:       d.Customer.Email,
			PhoneNumber: d.Customer.PhoneNumber,
		}
	}

	if d.Supplier != nil {
		resp.Supplier = counterpartyResponse{
			ID:          d.Supplier.ID,
			Name:        d.Supplier.Name,
			Email:       d.Supplier.Email,
			PhoneNumber: d.Supplier.PhoneNumber,
		}
	}

	for i, item := range d.Items {
		resp.Items[i] = itemResponse{
			ProductID: item.ProductID,
			UnitName:  item.UnitName,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
		}
	}

	for i, log := range d.StockLogs {
		resp.StockLogs[i] = stockLogResponse{
			ProductID:  log.ProductID,
			InitStock:  log.InitStock,
			ChangeType: log.ChangeType,
			Quantity:   log.Quantity,
			CreatedAt:  log.CreatedAt,
		}
	}

	return resp
}

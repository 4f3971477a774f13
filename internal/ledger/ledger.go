// Package ledger records inventory movement: transactions, their line items,
// and the append-only stock log that backs all historical reporting.
package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type determines the required counterparties and the stock direction.
type Type string

const (
	TypePurchase Type = "purchase"
	TypeSale     Type = "sale"
	TypeReturn   Type = "return"
)

// Direction is the stock-change direction: in adds to stock, out subtracts.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

type Transaction struct {
	ID         int64
	AccountID  int64
	SupplierID *int64
	CustomerID *int64
	Type       Type
	TotalCost  decimal.Decimal
	CreatedAt  time.Time
	DeletedAt  *time.Time
	DeletedBy  *int64
}

// Item is a transaction line. Unit name and price are denormalized at
// recording time; the row is immutable afterwards.
type Item struct {
	TransactionID int64
	ProductID     int64
	UnitName      string
	UnitPrice     decimal.Decimal
	Quantity      int
	CreatedAt     time.Time
}

// StockLog captures one product's movement within a transaction. InitStock is
// the stock level before the delta was applied and is the signal trend
// reports reconstruct history from.
type StockLog struct {
	TransactionID int64
	ProductID     int64
	InitStock     int
	ChangeType    Direction
	Quantity      int
	CreatedAt     time.Time
}

// AccountSummary is the acting account's public profile in a detail view.
type AccountSummary struct {
	ID    int64
	Name  string
	Email string
	Role  string
}

// Counterparty is a customer or supplier as rendered in a detail view.
type Counterparty struct {
	ID          int64
	Name        string
	Email       string
	PhoneNumber string
}

// Detail is the assembled view of a single transaction. Exactly one of
// Customer/Supplier is populated, chosen by the first stock log's direction;
// the recorder writes one direction per transaction so the logs are
// homogeneous.
type Detail struct {
	Transaction Transaction
	Account     *AccountSummary
	Customer    *Counterparty
	Supplier    *Counterparty
	Items       []Item
	StockLogs   []StockLog
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// listSortColumns is the allow-list for header sorting; unknown fields leave
// the default order.
var listSortColumns = map[string]string{
	"id":         "id",
	"type":       "type",
	"total_cost": "total_cost",
	"created_at": "created_at",
}

// ValidWindowMonths are the accepted trailing windows for header listing.
var ValidWindowMonths = map[int]bool{1: true, 3: true, 6: true, 12: true, 24: true, 36: true}

const DefaultWindowMonths = 3

type ListFilter struct {
	WindowMonths int
	Type         Type // empty means all types
	Recent       bool // last 24 hours; overrides every other filter
	SortBy       string
	SortOrder    SortOrder
}

// SortColumn resolves the sort field against the allow-list.
func (f ListFilter) SortColumn() (string, bool) {
	col, ok := listSortColumns[f.SortBy]
	if !ok || (f.SortOrder != SortAsc && f.SortOrder != SortDesc) {
		return "", false
	}

	return col, true
}

// RecordItem is one line of a record request. Stock is the caller-supplied
// current-stock snapshot persisted as the stock log's InitStock.
type RecordItem struct {
	ProductID int64
	UnitName  string
	UnitPrice decimal.Decimal
	Quantity  int
	Stock     int
}

type RecordParams struct {
	Type       Type
	Direction  Direction
	SupplierID *int64
	CustomerID *int64
	Items      []RecordItem
	TotalCost  decimal.Decimal
}

// StockAlert is emitted after commit for products that crossed the low or
// empty threshold. Empty takes precedence over low.
type StockAlert struct {
	ProductName string
	Empty       bool
}

package product

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID        int64
	Category  CategoryRef
	Name      string
	Price     decimal.Decimal
	Stock     int
	UpdatedAt time.Time
}

type CategoryRef struct {
	ID   int64
	Name string
}

type Params struct {
	Name       string
	CategoryID int64
	Price      decimal.Decimal
	Stock      int
}

// StockLevel buckets match the dashboard filter chips.
type StockLevel string

const (
	StockEmpty  StockLevel = "empty"
	StockLow    StockLevel = "low"
	StockNormal StockLevel = "normal"
)

type ListFilter struct {
	Search        string
	StockLevels   []StockLevel
	CategoryIDs   []int64
	UpdatedWithin string // one of updatedWindows; anything else is ignored
	SortBy        string
	SortOrder     string
}

// UpdatedSince resolves the updated-date filter to a cutoff, reported false
// for unknown selectors.
func (f ListFilter) UpdatedSince(now time.Time) (time.Time, bool) {
	switch f.UpdatedWithin {
	case "today":
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case "1 week":
		return now.AddDate(0, 0, -7), true
	case "1 month":
		return now.AddDate(0, -1, 0), true
	case "3 months":
		return now.AddDate(0, -3, 0), true
	case "6 months":
		return now.AddDate(0, -6, 0), true
	case "1 year":
		return now.AddDate(-1, 0, 0), true
	case "2 years":
		return now.AddDate(-2, 0, 0), true
	case "3 years":
		return now.AddDate(-3, 0, 0), true
	}

	return time.Time{}, false
}

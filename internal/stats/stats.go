// Package stats computes the dashboard rollups from the ledger tables.
package stats

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoData is returned when a report needs at least one ledger row in the
// selected range and none exists.
var ErrNoData = errors.New("no data in the selected range")

type TodaySales struct {
	TotalSales        decimal.Decimal
	TotalTransactions int
}

type Summary struct {
	LowStockItems     int
	TotalItems        int
	TotalTransactions int
}

type StockLevels struct {
	Empty  int
	Low    int
	Normal int
}

func (s StockLevels) Total() int {
	return s.Empty + s.Low + s.Normal
}

// SalesBucket is one slot of the dense total-sales series. Index is the
// 0-based position, kept explicit for direct charting.
type SalesBucket struct {
	Index int
	Sales decimal.Decimal
}

type TypeCountsBucket struct {
	Index    int
	Purchase int
	Sale     int
	Return   int
}

type StockTrendBucket struct {
	Index int
	Stock int
}

type MostUsedProduct struct {
	ProductID int64
	Name      string
	Usage     int
	Trend     []StockTrendBucket
}

// Sparse rows as returned by the grouped queries; the service spreads them
// into dense series.
type (
	SalesRow struct {
		Bucket time.Time
		Total  decimal.Decimal
	}

	TypeCountsRow struct {
		Bucket   time.Time
		Purchase int
		Sale     int
		Return   int
	}

	StockTrendRow struct {
		Bucket    time.Time
		InitStock int
	}

	ProductUsage struct {
		ProductID int64
		Name      string
		Usage     int
	}
)

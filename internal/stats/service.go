package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stats
type Repository interface {
	TodaySales(ctx context.Context, since time.Time) (TodaySales, error)
	Summary(ctx context.Context, since time.Time) (Summary, error)
	StockLevels(ctx context.Context) (StockLevels, error)
	SaleTotals(ctx context.Context, since time.Time, g Granularity) ([]SalesRow, error)
	TypeCounts(ctx context.Context, since time.Time, g Granularity) ([]TypeCountsRow, error)
	MostUsedProduct(ctx context.Context, since time.Time) (*ProductUsage, error)
	StockTrend(ctx context.Context, productID int64, since time.Time, g Granularity) ([]StockTrendRow, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// TodaySales covers the trailing 24 hours.
func (s *Service) TodaySales(ctx context.Context) (TodaySales, error) {
	return s.repo.TodaySales(ctx, s.now().Add(-24*time.Hour))
}

func (s *Service) Summary(ctx context.Context, r Range) (Summary, error) {
	return s.repo.Summary(ctx, r.WindowStart(s.now()))
}

func (s *Service) StockLevels(ctx context.Context) (StockLevels, error) {
	return s.repo.StockLevels(ctx)
}

// TotalSales returns the dense per-bucket sale sums for the range. Buckets
// with no sales carry zero; the series length always equals the range's
// bucket count.
func (s *Service) TotalSales(ctx context.Context, r Range) ([]SalesBucket, error) {
	now := s.now()

	rows, err := s.repo.SaleTotals(ctx, r.WindowStart(now), r.Granularity())
	if err != nil {
		return nil, fmt.Errorf("loading sale totals: %w", err)
	}

	series := make([]SalesBucket, r.Buckets())
	for i := range series {
		series[i] = SalesBucket{Index: i, Sales: decimal.Zero}
	}

	for _, row := range rows {
		if slot := r.Slot(row.Bucket, now); slot > 0 {
			series[slot-1].Sales = row.Total
		}
	}

	return series, nil
}

func (s *Service) Transactions(ctx context.Context, r Range) ([]TypeCountsBucket, error) {
	now := s.now()

	rows, err := s.repo.TypeCounts(ctx, r.WindowStart(now), r.Granularity())
	if err != nil {
		return nil, fmt.Errorf("loading type counts: %w", err)
	}

	series := make([]TypeCountsBucket, r.Buckets())
	for i := range series {
		series[i].Index = i
	}

	for _, row := range rows {
		if slot := r.Slot(row.Bucket, now); slot > 0 {
			series[slot-1].Purchase = row.Purchase
			series[slot-1].Sale = row.Sale
			series[slot-1].Return = row.Return
		}
	}

	return series, nil
}

// MostUsedProductStock finds the product with the highest line-item usage in
// the range and returns its gap-filled stock trend.
func (s *Service) MostUsedProductStock(ctx context.Context, r Range) (*MostUsedProduct, error) {
	now := s.now()
	since := r.WindowStart(now)

	usage, err := s.repo.MostUsedProduct(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("finding most used product: %w", err)
	}

	if usage == nil {
		return nil, ErrNoData
	}

	rows, err := s.repo.StockTrend(ctx, usage.ProductID, since, r.Granularity())
	if err != nil {
		return nil, fmt.Errorf("loading stock trend: %w", err)
	}

	trend := make([]StockTrendBucket, r.Buckets())
	for i := range trend {
		trend[i].Index = i
	}

	for _, row := range rows {
		if slot := r.Slot(row.Bucket, now); slot > 0 {
			trend[slot-1].Stock = row.InitStock
		}
	}

	return &MostUsedProduct{
		ProductID: usage.ProductID,
		Name:      usage.Name,
		Usage:     usage.Usage,
		Trend:     trend,
	}, nil
}

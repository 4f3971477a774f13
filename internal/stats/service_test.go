package stats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// 2024-06-15 is a Saturday.
var fixedNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)

	svc := NewService(repo)
	svc.now = func() time.Time { return fixedNow }

	return svc, repo
}

func TestService_TodaySales(t *testing.T) {
	svc, repo := newTestService(t)

	want := TodaySales{TotalSales: decimal.NewFromInt(120), TotalTransactions: 4}
	repo.EXPECT().
		TodaySales(gomock.Any(), fixedNow.Add(-24*time.Hour)).
		Return(want, nil)

	got, err := svc.TodaySales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_TotalSales_EmptyRangeIsAllZeros(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().
		SaleTotals(gomock.Any(), RangeLastWeek.WindowStart(fixedNow), ByDay).
		Return(nil, nil)

	series, err := svc.TotalSales(context.Background(), RangeLastWeek)
	require.NoError(t, err)
	require.Len(t, series, 7)

	for i, bucket := range series {
		assert.Equal(t, i, bucket.Index)
		assert.True(t, bucket.Sales.IsZero())
	}
}

func TestService_TotalSales_PlacesRowsByWeekday(t *testing.T) {
	svc, repo := newTestService(t)

	// A single sale on Tuesday lands in the third slot, index 2.
	tuesday := time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().
		SaleTotals(gomock.Any(), gomock.Any(), ByDay).
		Return([]SalesRow{{Bucket: tuesday, Total: decimal.NewFromFloat(50.00)}}, nil)

	series, err := svc.TotalSales(context.Background(), RangeLastWeek)
	require.NoError(t, err)
	require.Len(t, series, 7)

	for i, bucket := range series {
		if i == 2 {
			assert.True(t, bucket.Sales.Equal(decimal.NewFromFloat(50.00)))
			continue
		}

		assert.True(t, bucket.Sales.IsZero(), "bucket %d should be empty", i)
	}
}

func TestService_Transactions_GapFill(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().
		TypeCounts(gomock.Any(), RangeLastYear.WindowStart(fixedNow), ByMonth).
		Return([]TypeCountsRow{
			{Bucket: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Purchase: 2, Sale: 5},
			{Bucket: time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC), Return: 1},
		}, nil)

	series, err := svc.Transactions(context.Background(), RangeLastYear)
	require.NoError(t, err)
	require.Len(t, series, 12)

	// March occupies slot 3, November slot 11.
	assert.Equal(t, TypeCountsBucket{Index: 2, Purchase: 2, Sale: 5}, series[2])
	assert.Equal(t, TypeCountsBucket{Index: 10, Return: 1}, series[10])
	assert.Equal(t, TypeCountsBucket{Index: 0}, series[0])
}

func TestService_TotalSales_CurrentMonthKeptInThreeYearSeries(t *testing.T) {
	svc, repo := newTestService(t)

	// Rows truncated to the current month must land in the final slot, and a
	// bucket from the same calendar month three years earlier must not alias
	// onto an occupied slot.
	currentMonth := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	staleMonth := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().
		SaleTotals(gomock.Any(), RangeLast3Years.WindowStart(fixedNow), ByMonth).
		Return([]SalesRow{
			{Bucket: staleMonth, Total: decimal.NewFromInt(999)},
			{Bucket: currentMonth, Total: decimal.NewFromInt(75)},
		}, nil)

	series, err := svc.TotalSales(context.Background(), RangeLast3Years)
	require.NoError(t, err)
	require.Len(t, series, 36)

	assert.True(t, series[35].Sales.Equal(decimal.NewFromInt(75)))

	for i := 0; i < 35; i++ {
		assert.True(t, series[i].Sales.IsZero(), "bucket %d should be empty", i)
	}
}

func TestService_MostUsedProductStock(t *testing.T) {
	svc, repo := newTestService(t)

	since := RangeLastWeek.WindowStart(fixedNow)
	repo.EXPECT().
		MostUsedProduct(gomock.Any(), since).
		Return(&ProductUsage{ProductID: 7, Name: "Widget", Usage: 9}, nil)
	repo.EXPECT().
		StockTrend(gomock.Any(), int64(7), since, ByDay).
		Return([]StockTrendRow{
			{Bucket: time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC), InitStock: 14},
		}, nil)

	got, err := svc.MostUsedProductStock(context.Background(), RangeLastWeek)
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.ProductID)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 9, got.Usage)
	require.Len(t, got.Trend, 7)
	assert.Equal(t, StockTrendBucket{Index: 2, Stock: 14}, got.Trend[2])
	assert.Equal(t, StockTrendBucket{Index: 3}, got.Trend[3])
}

func TestService_MostUsedProductStock_NoData(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().
		MostUsedProduct(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	_, err := svc.MostUsedProductStock(context.Background(), RangeLastWeek)
	assert.ErrorIs(t, err, ErrNoData)
}

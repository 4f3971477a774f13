package product_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/product"
)

type captureNotifier struct {
	mu    sync.Mutex
	low   []string
	empty []string
}

func (n *captureNotifier) NotifyLowStock(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.low = append(n.low, name)
}

func (n *captureNotifier) NotifyEmptyStock(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.empty = append(n.empty, name)
}

func (n *captureNotifier) snapshot() (low, empty []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.low...), append([]string(nil), n.empty...)
}

func TestService_Create_MissingCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := product.NewMockRepository(ctrl)

	repo.EXPECT().
		CategoryExists(gomock.Any(), int64(4)).
		Return(false, nil)

	svc := product.NewService(repo, &captureNotifier{}, 10)
	_, err := svc.Create(context.Background(), product.Params{
		Name:       "Widget",
		CategoryID: 4,
		Price:      decimal.NewFromInt(5),
	})

	require.Error(t, err)
	kind, ok := apperror.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperror.NotFound, kind)
}

func TestService_Update_StockAlerts(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		wantLow   bool
		wantEmpty bool
	}{
		{name: "empty stock", stock: 0, wantEmpty: true},
		{name: "low stock", stock: 5, wantLow: true},
		{name: "normal stock", stock: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := product.NewMockRepository(ctrl)
			notifier := &captureNotifier{}

			params := product.Params{
				Name:       "Widget",
				CategoryID: 4,
				Price:      decimal.NewFromInt(5),
				Stock:      tt.stock,
			}

			repo.EXPECT().CategoryExists(gomock.Any(), int64(4)).Return(true, nil)
			repo.EXPECT().UpdateProduct(gomock.Any(), int64(1), params).Return(nil)
			repo.EXPECT().
				GetProduct(gomock.Any(), int64(1)).
				Return(&product.Product{ID: 1, Name: "Widget", Stock: tt.stock}, nil)

			svc := product.NewService(repo, notifier, 10)
			p, err := svc.Update(context.Background(), 1, params)
			require.NoError(t, err)
			assert.Equal(t, tt.stock, p.Stock)

			if tt.wantEmpty || tt.wantLow {
				assert.Eventually(t, func() bool {
					low, empty := notifier.snapshot()
					if tt.wantEmpty {
						return len(empty) == 1 && len(low) == 0
					}
					return len(low) == 1 && len(empty) == 0
				}, time.Second, 10*time.Millisecond)

				return
			}

			// Alerts fire on a goroutine; give a wrong one a chance to land.
			time.Sleep(20 * time.Millisecond)
			low, empty := notifier.snapshot()
			assert.Empty(t, low)
			assert.Empty(t, empty)
		})
	}
}

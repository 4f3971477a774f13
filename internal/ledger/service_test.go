package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/ledger"
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

func ptr(v int64) *int64 { return &v }

func TestService_Record_Validation(t *testing.T) {
	type testCase struct {
		name     string
		params   ledger.RecordParams
		wantKind apperror.Kind
	}

	items := []ledger.RecordItem{{ProductID: 1, UnitName: "pcs", UnitPrice: decimal.NewFromFloat(9.99), Quantity: 3, Stock: 12}}

	tests := []testCase{
		{
			name:     "EmptyItems",
			params:   ledger.RecordParams{Type: ledger.TypeSale, Direction: ledger.DirectionOut, CustomerID: ptr(5)},
			wantKind: apperror.Invalid,
		},
		{
			name:     "PurchaseWithoutSupplier",
			params:   ledger.RecordParams{Type: ledger.TypePurchase, Direction: ledger.DirectionIn, Items: items},
			wantKind: apperror.Invalid,
		},
		{
			name:     "PurchaseWithOutDirection",
			params:   ledger.RecordParams{Type: ledger.TypePurchase, Direction: ledger.DirectionOut, SupplierID: ptr(2), Items: items},
			wantKind: apperror.Unprocessable,
		},
		{
			name:     "SaleWithoutCustomer",
			params:   ledger.RecordParams{Type: ledger.TypeSale, Direction: ledger.DirectionOut, Items: items},
			wantKind: apperror.Invalid,
		},
		{
			name:     "SaleWithInDirection",
			params:   ledger.RecordParams{Type: ledger.TypeSale, Direction: ledger.DirectionIn, CustomerID: ptr(5), Items: items},
			wantKind: apperror.Unprocessable,
		},
		{
			name:     "ReturnWithoutCustomer",
			params:   ledger.RecordParams{Type: ledger.TypeReturn, Direction: ledger.DirectionIn, SupplierID: ptr(2), Items: items},
			wantKind: apperror.Invalid,
		},
		{
			name:     "ReturnWithBogusDirection",
			params:   ledger.RecordParams{Type: ledger.TypeReturn, Direction: "sideways", SupplierID: ptr(2), CustomerID: ptr(5), Items: items},
			wantKind: apperror.Unprocessable,
		},
		{
			name:     "UnsupportedType",
			params:   ledger.RecordParams{Type: "donation", Direction: ledger.DirectionIn, Items: items},
			wantKind: apperror.Unprocessable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No repository calls at all: validation failures must not touch
			// the store.
			repo := ledger.NewMockRepository(ctrl)
			svc := ledger.NewService(repo, &captureNotifier{}, 10, nil)

			err := svc.Record(context.Background(), 1, tt.params)
			require.Error(t, err)

			kind, ok := apperror.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestService_Record_SaleSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	rtx := ledger.NewMockRecordTx(ctrl)
	notifier := &captureNotifier{}
	svc := ledger.NewService(repo, notifier, 10, nil)

	params := ledger.RecordParams{
		Type:       ledger.TypeSale,
		Direction:  ledger.DirectionOut,
		CustomerID: ptr(5),
		Items: []ledger.RecordItem{
			{ProductID: 1, UnitName: "Widget", UnitPrice: decimal.NewFromFloat(9.99), Quantity: 3, Stock: 12},
		},
		TotalCost: decimal.NewFromFloat(29.97),
	}

	repo.EXPECT().Begin(gomock.Any()).Return(rtx, nil)

	gomock.InOrder(
		rtx.EXPECT().CustomerExists(gomock.Any(), int64(5)).Return(true, nil),
		rtx.EXPECT().
			InsertTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
				assert.Equal(t, int64(9), tx.AccountID)
				assert.Equal(t, ledger.TypeSale, tx.Type)
				require.NotNil(t, tx.CustomerID)
				assert.Equal(t, int64(5), *tx.CustomerID)
				tx.ID = 42
				tx.CreatedAt = time.Now()
				return nil
			}),
		rtx.EXPECT().
			InsertItem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, item *ledger.Item) error {
				assert.Equal(t, int64(42), item.TransactionID)
				assert.Equal(t, "Widget", item.UnitName)
				assert.Equal(t, 3, item.Quantity)
				return nil
			}),
		rtx.EXPECT().
			InsertStockLog(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, log *ledger.StockLog) error {
				assert.Equal(t, int64(42), log.TransactionID)
				assert.Equal(t, 12, log.InitStock)
				assert.Equal(t, ledger.DirectionOut, log.ChangeType)
				assert.Equal(t, 3, log.Quantity)
				return nil
			}),
		rtx.EXPECT().AdjustStock(gomock.Any(), int64(1), 3, ledger.DirectionOut).Return(9, "Widget", nil),
		rtx.EXPECT().Commit().Return(nil),
	)
	rtx.EXPECT().Rollback().Return(nil)

	err := svc.Record(context.Background(), 9, params)
	require.NoError(t, err)

	// Post-mutation stock 9 crossed the low threshold; the alert fires
	// asynchronously after commit.
	assert.Eventually(t, func() bool {
		low, empty := notifier.snapshot()
		return len(low) == 1 && low[0] == "Widget" && len(empty) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestService_Record_SaleDropsExtraneousSupplier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	rtx := ledger.NewMockRecordTx(ctrl)
	svc := ledger.NewService(repo, &captureNotifier{}, 10, nil)

	repo.EXPECT().Begin(gomock.Any()).Return(rtx, nil)

	// A supplier id on a sale is ignored: no existence check against it and
	// no supplier reference in the stored header.
	gomock.InOrder(
		rtx.EXPECT().CustomerExists(gomock.Any(), int64(5)).Return(true, nil),
		rtx.EXPECT().
			InsertTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
				assert.Nil(t, tx.SupplierID)
				require.NotNil(t, tx.CustomerID)
				assert.Equal(t, int64(5), *tx.CustomerID)
				tx.ID = 42
				return nil
			}),
		rtx.EXPECT().InsertItem(gomock.Any(), gomock.Any()).Return(nil),
		rtx.EXPECT().InsertStockLog(gomock.Any(), gomock.Any()).Return(nil),
		rtx.EXPECT().AdjustStock(gomock.Any(), int64(1), 2, ledger.DirectionOut).Return(20, "Widget", nil),
		rtx.EXPECT().Commit().Return(nil),
	)
	rtx.EXPECT().Rollback().Return(nil)

	err := svc.Record(context.Background(), 1, ledger.RecordParams{
		Type:       ledger.TypeSale,
		Direction:  ledger.DirectionOut,
		SupplierID: ptr(777),
		CustomerID: ptr(5),
		Items: []ledger.RecordItem{
			{ProductID: 1, UnitName: "Widget", UnitPrice: decimal.NewFromInt(3), Quantity: 2, Stock: 22},
		},
	})
	require.NoError(t, err)
}

func TestService_Record_MissingCustomerWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	rtx := ledger.NewMockRecordTx(ctrl)
	svc := ledger.NewService(repo, &captureNotifier{}, 10, nil)

	repo.EXPECT().Begin(gomock.Any()).Return(rtx, nil)
	rtx.EXPECT().CustomerExists(gomock.Any(), int64(999)).Return(false, nil)
	rtx.EXPECT().Rollback().Return(nil)

	err := svc.Record(context.Background(), 1, ledger.RecordParams{
		Type:       ledger.TypeSale,
		Direction:  ledger.DirectionOut,
		CustomerID: ptr(999),
		Items: []ledger.RecordItem{
			{ProductID: 1, UnitName: "Widget", UnitPrice: decimal.NewFromFloat(9.99), Quantity: 3, Stock: 12},
		},
	})
	require.Error(t, err)

	kind, ok := apperror.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperror.NotFound, kind)
}

func TestService_Record_ReturnChecksBothCounterparties(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	rtx := ledger.NewMockRecordTx(ctrl)
	svc := ledger.NewService(repo, &captureNotifier{}, 10, nil)

	repo.EXPECT().Begin(gomock.Any()).Return(rtx, nil)
	rtx.EXPECT().SupplierExists(gomock.Any(), int64(2)).Return(true, nil)
	rtx.EXPECT().CustomerExists(gomock.Any(), int64(5)).Return(false, nil)
	rtx.EXPECT().Rollback().Return(nil)

	err := svc.Record(context.Background(), 1, ledger.RecordParams{
		Type:       ledger.TypeReturn,
		Direction:  ledger.DirectionIn,
		SupplierID: ptr(2),
		CustomerID: ptr(5),
		Items: []ledger.RecordItem{
			{ProductID: 7, UnitName: "Box", UnitPrice: decimal.NewFromInt(4), Quantity: 1, Stock: 3},
		},
	})
	require.Error(t, err)

	kind, ok := apperror.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperror.NotFound, kind)
}

func TestService_Record_MultipleItemsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	rtx := ledger.NewMockRecordTx(ctrl)
	notifier := &captureNotifier{}
	svc := ledger.NewService(repo, notifier, 10, nil)

	params := ledger.RecordParams{
		Type:       ledger.TypePurchase,
		Direction:  ledger.DirectionIn,
		SupplierID: ptr(3),
		Items: []ledger.RecordItem{
			{ProductID: 1, UnitName: "Widget", UnitPrice: decimal.NewFromInt(2), Quantity: 5, Stock: 0},
			{ProductID: 2, UnitName: "Gadget", UnitPrice: decimal.NewFromInt(7), Quantity: 20, Stock: 4},
		},
		TotalCost: decimal.NewFromInt(150),
	}

	repo.EXPECT().Begin(gomock.Any()).Return(rtx, nil)

	gomock.InOrder(
		rtx.EXPECT().SupplierExists(gomock.Any(), int64(3)).Return(true, nil),
		rtx.EXPECT().
			InsertTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
				tx.ID = 7
				return nil
			}),
		rtx.EXPECT().InsertItem(gomock.Any(), gomock.Any()).Return(nil),
		rtx.EXPECT().InsertStockLog(gomock.Any(), gomock.Any()).Return(nil),
		rtx.EXPECT().AdjustStock(gomock.Any(), int64(1), 5, ledger.DirectionIn).Return(5, "Widget", nil),
		rtx.EXPECT().InsertItem(gomock.Any(), gomock.Any()).Return(nil),
		rtx.EXPECT().InsertStockLog(gomock.Any(), gomock.Any()).Return(nil),
		rtx.EXPECT().AdjustStock(gomock.Any(), int64(2), 20, ledger.DirectionIn).Return(24, "Gadget", nil),
		rtx.EXPECT().Commit().Return(nil),
	)
	rtx.EXPECT().Rollback().Return(nil)

	require.NoError(t, svc.Record(context.Background(), 1, params))

	// Widget landed at 5, still below the threshold.
	assert.Eventually(t, func() bool {
		low, empty := notifier.snapshot()
		return len(low) == 1 && low[0] == "Widget" && len(empty) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestService_Record_EmptyStockTakesPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	rtx := ledger.NewMockRecordTx(ctrl)
	notifier := &captureNotifier{}
	svc := ledger.NewService(repo, notifier, 10, nil)

	repo.EXPECT().Begin(gomock.Any()).Return(rtx, nil)
	rtx.EXPECT().CustomerExists(gomock.Any(), int64(5)).Return(true, nil)
	rtx.EXPECT().
		InsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			tx.ID = 1
			return nil
		})
	rtx.EXPECT().InsertItem(gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().InsertStockLog(gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().AdjustStock(gomock.Any(), int64(1), 4, ledger.DirectionOut).Return(0, "Widget", nil)
	rtx.EXPECT().Commit().Return(nil)
	rtx.EXPECT().Rollback().Return(nil)

	err := svc.Record(context.Background(), 1, ledger.RecordParams{
		Type:       ledger.TypeSale,
		Direction:  ledger.DirectionOut,
		CustomerID: ptr(5),
		Items: []ledger.RecordItem{
			{ProductID: 1, UnitName: "Widget", UnitPrice: decimal.NewFromInt(1), Quantity: 4, Stock: 4},
		},
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		low, empty := notifier.snapshot()
		return len(empty) == 1 && empty[0] == "Widget" && len(low) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestService_Record_CommitFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	rtx := ledger.NewMockRecordTx(ctrl)
	notifier := &captureNotifier{}
	svc := ledger.NewService(repo, notifier, 10, nil)

	repo.EXPECT().Begin(gomock.Any()).Return(rtx, nil)
	rtx.EXPECT().SupplierExists(gomock.Any(), int64(2)).Return(true, nil)
	rtx.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().InsertItem(gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().InsertStockLog(gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().AdjustStock(gomock.Any(), int64(1), 2, ledger.DirectionIn).Return(3, "Widget", nil)
	rtx.EXPECT().Commit().Return(errors.New("deadlock"))
	rtx.EXPECT().Rollback().Return(nil)

	err := svc.Record(context.Background(), 1, ledger.RecordParams{
		Type:       ledger.TypePurchase,
		Direction:  ledger.DirectionIn,
		SupplierID: ptr(2),
		Items: []ledger.RecordItem{
			{ProductID: 1, UnitName: "Widget", UnitPrice: decimal.NewFromInt(1), Quantity: 2, Stock: 1},
		},
	})
	require.Error(t, err)

	_, ok := apperror.KindOf(err)
	assert.False(t, ok)

	// No alert escapes a failed unit.
	time.Sleep(50 * time.Millisecond)
	low, empty := notifier.snapshot()
	assert.Empty(t, low)
	assert.Empty(t, empty)
}

func TestService_List_DefaultsWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, &captureNotifier{}, 10, nil)

	repo.EXPECT().
		ListTransactions(gomock.Any(), ledger.ListFilter{WindowMonths: 3}).
		Return([]ledger.Transaction{{ID: 1}}, nil)

	txs, err := svc.List(context.Background(), ledger.ListFilter{WindowMonths: 5})
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestService_Get_Detail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, &captureNotifier{}, 10, nil)

	tx := &ledger.Transaction{
		ID:         42,
		AccountID:  9,
		CustomerID: ptr(5),
		Type:       ledger.TypeSale,
		TotalCost:  decimal.NewFromFloat(29.97),
	}

	repo.EXPECT().GetTransaction(gomock.Any(), int64(42)).Return(tx, nil)
	repo.EXPECT().GetAccountSummary(gomock.Any(), int64(9)).Return(&ledger.AccountSummary{ID: 9, Name: "Ann"}, nil)
	repo.EXPECT().ListItems(gomock.Any(), int64(42)).Return([]ledger.Item{{ProductID: 1, Quantity: 3}}, nil)
	repo.EXPECT().ListStockLogs(gomock.Any(), int64(42)).Return([]ledger.StockLog{
		{ProductID: 1, InitStock: 12, ChangeType: ledger.DirectionOut, Quantity: 3},
	}, nil)
	repo.EXPECT().GetCustomer(gomock.Any(), int64(5)).Return(&ledger.Counterparty{ID: 5, Name: "Bob"}, nil)

	detail, err := svc.Get(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, detail.Customer)
	assert.Equal(t, "Bob", detail.Customer.Name)
	assert.Nil(t, detail.Supplier)
	assert.Len(t, detail.Items, 1)
	assert.Len(t, detail.StockLogs, 1)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, &captureNotifier{}, 10, nil)

	repo.EXPECT().GetTransaction(gomock.Any(), int64(404)).Return(nil, ledger.ErrNotFound)

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

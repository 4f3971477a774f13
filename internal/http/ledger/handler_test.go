package ledger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockpile/backend/internal/auth"
	ledgerHandler "github.com/stockpile/backend/internal/http/ledger"
	"github.com/stockpile/backend/internal/ledger"
	"github.com/stockpile/backend/internal/notify"
)

func newTestRouter(t *testing.T) (chi.Router, *ledger.MockRepository, *ledger.MockRecordTx) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	rtx := ledger.NewMockRecordTx(ctrl)

	h := ledgerHandler.NewHandler(ledger.NewService(repo, notify.NewLogNotifier(nil), 10, nil))

	r := chi.NewRouter()
	h.Routes(r)
	h.AdminRoutes(r)

	return r, repo, rtx
}

func asAdmin(r *http.Request) *http.Request {
	actor := auth.Actor{ID: 1, Role: auth.RoleAdmin}
	return r.WithContext(auth.WithActor(r.Context(), actor))
}

func TestHandler_Record_DecodesItemFields(t *testing.T) {
	router, repo, rtx := newTestRouter(t)

	body := `{
		"type": "sale",
		"stock_change_type": "out",
		"customer_id": 5,
		"total_cost": 19.98,
		"items": [
			{"product_id": 1, "unit_name": "Widget", "unit_price": 9.99, "quantity": 2, "stock": 30}
		]
	}`

	repo.EXPECT().Begin(gomock.Any()).Return(rtx, nil)
	rtx.EXPECT().CustomerExists(gomock.Any(), int64(5)).Return(true, nil)
	rtx.EXPECT().
		InsertTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
			tx.ID = 42
			return nil
		})
	rtx.EXPECT().
		InsertItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item *ledger.Item) error {
			assert.Equal(t, "Widget", item.UnitName)
			assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(9.99)))
			return nil
		})
	rtx.EXPECT().InsertStockLog(gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().AdjustStock(gomock.Any(), int64(1), 2, ledger.DirectionOut).Return(28, "Widget", nil)
	rtx.EXPECT().Commit().Return(nil)
	rtx.EXPECT().Rollback().Return(nil)

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusResetContent, rec.Code)
}

func TestHandler_List_MapsQueryFilters(t *testing.T) {
	router, repo, _ := newTestRouter(t)

	repo.EXPECT().
		ListTransactions(gomock.Any(), ledger.ListFilter{
			WindowMonths: 6,
			Type:         ledger.TypeSale,
		}).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/?filter_type=sale&filter_date_range=6", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Get_ItemFieldNames(t *testing.T) {
	router, repo, _ := newTestRouter(t)

	tx := &ledger.Transaction{ID: 42, AccountID: 1, Type: ledger.TypeSale}
	repo.EXPECT().GetTransaction(gomock.Any(), int64(42)).Return(tx, nil)
	repo.EXPECT().GetAccountSummary(gomock.Any(), int64(1)).Return(&ledger.AccountSummary{ID: 1, Name: "Ann"}, nil)
	repo.EXPECT().ListItems(gomock.Any(), int64(42)).Return([]ledger.Item{
		{ProductID: 1, UnitName: "Widget", UnitPrice: decimal.NewFromFloat(9.99), Quantity: 2},
	}, nil)
	repo.EXPECT().ListStockLogs(gomock.Any(), int64(42)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)

	assert.Equal(t, "Widget", resp.Items[0]["unit_name"])
	assert.InDelta(t, 9.99, resp.Items[0]["unit_price"], 0.001)
}

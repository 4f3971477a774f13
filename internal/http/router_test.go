package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockpile/backend/internal/account"
	"github.com/stockpile/backend/internal/auth"
	"github.com/stockpile/backend/internal/avatar"
	"github.com/stockpile/backend/internal/category"
	"github.com/stockpile/backend/internal/customer"
	stockpileHttp "github.com/stockpile/backend/internal/http"
	accountHandler "github.com/stockpile/backend/internal/http/account"
	authHandler "github.com/stockpile/backend/internal/http/auth"
	categoryHandler "github.com/stockpile/backend/internal/http/category"
	customerHandler "github.com/stockpile/backend/internal/http/customer"
	ledgerHandler "github.com/stockpile/backend/internal/http/ledger"
	productHandler "github.com/stockpile/backend/internal/http/product"
	statsHandler "github.com/stockpile/backend/internal/http/stats"
	supplierHandler "github.com/stockpile/backend/internal/http/supplier"
	"github.com/stockpile/backend/internal/ledger"
	"github.com/stockpile/backend/internal/notify"
	"github.com/stockpile/backend/internal/product"
	"github.com/stockpile/backend/internal/stats"
	"github.com/stockpile/backend/internal/supplier"
)

type routerFixture struct {
	handler      http.Handler
	tokens       *auth.Service
	customerRepo *customer.MockRepository
	ledgerRepo   *ledger.MockRepository
	statsRepo    *stats.MockRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	customerRepo := customer.NewMockRepository(ctrl)
	ledgerRepo := ledger.NewMockRepository(ctrl)
	statsRepo := stats.NewMockRepository(ctrl)

	tokens := auth.NewService("test-secret", time.Hour)
	avatars, err := avatar.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	notifier := notify.NewLogNotifier(nil)
	accounts := account.NewService(nil)

	handler := stockpileHttp.New(
		tokens,
		avatars,
		1000,
		authHandler.NewHandler(accounts, tokens, avatars),
		accountHandler.NewHandler(accounts, avatars),
		categoryHandler.NewHandler(category.NewService(nil)),
		customerHandler.NewHandler(customer.NewService(customerRepo)),
		supplierHandler.NewHandler(supplier.NewService(nil)),
		productHandler.NewHandler(product.NewService(nil, notifier, 10)),
		ledgerHandler.NewHandler(ledger.NewService(ledgerRepo, notifier, 10, nil)),
		statsHandler.NewHandler(stats.NewService(statsRepo)),
	)

	return &routerFixture{
		handler:      handler,
		tokens:       tokens,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		statsRepo:    statsRepo,
	}
}

func (f *routerFixture) request(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	return rec
}

func TestRouter_WritesRequireAdmin(t *testing.T) {
	f := newRouterFixture(t)

	staff, err := f.tokens.GenerateToken(2, auth.RoleStaff)
	require.NoError(t, err)

	// No service call may go through: every write from a staff token stops
	// at the role gate.
	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/v1/transactions"},
		{http.MethodDelete, "/api/v1/transactions/1"},
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodPut, "/api/v1/categories/1"},
		{http.MethodDelete, "/api/v1/categories/1"},
		{http.MethodPost, "/api/v1/customers"},
		{http.MethodPut, "/api/v1/customers/1"},
		{http.MethodDelete, "/api/v1/customers/1"},
		{http.MethodPost, "/api/v1/suppliers"},
		{http.MethodDelete, "/api/v1/suppliers/1"},
		{http.MethodPost, "/api/v1/products"},
		{http.MethodPut, "/api/v1/products/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := f.request(t, tt.method, tt.target, staff, `{}`)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestRouter_StaffCanRead(t *testing.T) {
	f := newRouterFixture(t)

	staff, err := f.tokens.GenerateToken(2, auth.RoleStaff)
	require.NoError(t, err)

	f.customerRepo.EXPECT().
		ListCustomers(gomock.Any(), gomock.Any()).
		Return([]customer.Customer{{ID: 1, Name: "Ann"}}, nil)
	f.ledgerRepo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	rec := f.request(t, http.MethodGet, "/api/v1/customers", staff, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/v1/transactions", staff, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminPassesWriteGate(t *testing.T) {
	f := newRouterFixture(t)

	admin, err := f.tokens.GenerateToken(1, auth.RoleAdmin)
	require.NoError(t, err)

	// A malformed body reaches the handler and fails there, proving the
	// request cleared the role gate.
	rec := f.request(t, http.MethodPost, "/api/v1/transactions", admin, `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_MostUsedProductStock(t *testing.T) {
	f := newRouterFixture(t)

	staff, err := f.tokens.GenerateToken(2, auth.RoleStaff)
	require.NoError(t, err)

	f.statsRepo.EXPECT().
		MostUsedProduct(gomock.Any(), gomock.Any()).
		Return(&stats.ProductUsage{ProductID: 7, Name: "Widget", Usage: 9}, nil)
	f.statsRepo.EXPECT().
		StockTrend(gomock.Any(), int64(7), gomock.Any(), stats.ByDay).
		Return(nil, nil)

	target := "/api/v1/stats/most-used-product-stock?" + url.Values{
		"date_range": {"last week"},
	}.Encode()

	rec := f.request(t, http.MethodGet, target, staff, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MissingTokenIsUnauthorized(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.request(t, http.MethodGet, "/api/v1/customers", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

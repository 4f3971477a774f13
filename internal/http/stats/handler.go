package stats

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpile/backend/internal/http/respond"
	"github.com/stockpile/backend/internal/stats"
)

type Handler struct {
	svc *stats.Service
}

func NewHandler(svc *stats.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/today-sales", h.todaySales)
	r.Get("/summary", h.summary)
	r.Get("/stock-levels", h.stockLevels)
	r.Get("/total-sales", h.totalSales)
	r.Get("/transactions", h.transactions)
	r.Get("/most-used-product-stock", h.mostUsedProduct)
}

func rangeParam(r *http.Request) stats.Range {
	return stats.ParseRange(r.URL.Query().Get("date_range"))
}

func (h *Handler) todaySales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.TodaySales(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, todaySalesResponse{
		TotalSales:        sales.TotalSales.InexactFloat64(),
		TotalTransactions: sales.TotalTransactions,
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), rangeParam(r))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		LowStockItems:     summary.LowStockItems,
		TotalItems:        summary.TotalItems,
		TotalTransactions: summary.TotalTransactions,
	})
}

func (h *Handler) stockLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.svc.StockLevels(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, stockLevelsResponse{
		Empty:  levels.Empty,
		Low:    levels.Low,
		Normal: levels.Normal,
		Total:  levels.Total(),
	})
}

func (h *Handler) totalSales(w http.ResponseWriter, r *http.Request) {
	series, err := h.svc.TotalSales(r.Context(), rangeParam(r))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSalesSeries(series))
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	series, err := h.svc.Transactions(r.Context(), rangeParam(r))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toTypeCountsSeries(series))
}

func (h *Handler) mostUsedProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.MostUsedProductStock(r.Context(), rangeParam(r))
	if err != nil {
		if errors.Is(err, stats.ErrNoData) {
			respond.Message(w, http.StatusNotFound, "No transaction data in the selected range")
			return
		}

		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toMostUsedResponse(product))
}

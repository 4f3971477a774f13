package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/stockpile/backend/internal/auth"
	"github.com/stockpile/backend/internal/http/respond"
	"github.com/stockpile/backend/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the read endpoints available to every authenticated role.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

// AdminRoutes registers the write endpoints; the caller mounts them behind
// the admin gate.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/", h.record)
	r.Delete("/{id}", h.delete)
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

type recordItemRequest struct {
	ProductID int64           `json:"product_id"`
	UnitName  string          `json:"unit_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
}

type recordRequest struct {
	Type            ledger.Type         `json:"type"`
	StockChangeType ledger.Direction    `json:"stock_change_type"`
	SupplierID      *int64              `json:"supplier_id"`
	CustomerID      *int64              `json:"customer_id"`
	TotalCost       decimal.Decimal     `json:"total_cost"`
	Items           []recordItemRequest `json:"items"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	params := ledger.RecordParams{
		Type:       req.Type,
		Direction:  req.StockChangeType,
		SupplierID: req.SupplierID,
		CustomerID: req.CustomerID,
		TotalCost:  req.TotalCost,
	}
	for _, item := range req.Items {
		params.Items = append(params.Items, ledger.RecordItem{
			ProductID: item.ProductID,
			UnitName:  item.UnitName,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Stock:     item.Stock,
		})
	}

	if err := h.svc.Record(r.Context(), actor.ID, params); err != nil {
		respond.Error(w, err)
		return
	}

	respond.Message(w, http.StatusResetContent, "Transaction recorded successfully")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ledger.ListFilter{
		Type:      ledger.Type(q.Get("filter_type")),
		Recent:    q.Get("recent") == "true",
		SortBy:    q.Get("sort_by"),
		SortOrder: ledger.SortOrder(q.Get("sort_order")),
	}

	if months, err := strconv.Atoi(q.Get("filter_date_range")); err == nil {
		filter.WindowMonths = months
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	detail, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Transaction not found")
			return
		}

		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toDetailResponse(detail))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := idParam(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id, actor.ID); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Transaction not found")
			return
		}

		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

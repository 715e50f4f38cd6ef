package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-billing/internal/catalog"
	"github.com/noah-isme/backend-billing/internal/common"
)

// Handler exposes the line-item entry endpoints.
type Handler struct {
	Session  *Session
	Validate *validator.Validate
}

type entryRequest struct {
	Qty   int             `json:"qty" validate:"gte=0"`
	Unit  string          `json:"unit" validate:"max=16"`
	Price decimal.Decimal `json:"price"`
}

type entryResponse struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
	Unit    string `json:"unit"`
	Price   string `json:"price"`
}

// UpdateEntry handles PUT /api/v1/products/{index}/entry.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		common.WriteError(w, common.BadRequest("index", "index must be a non-negative integer", err))
		return
	}
	product, err := h.Session.Catalog().Name(index)
	if err != nil {
		common.WriteError(w, common.NotFound("product not found", err))
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(w, common.BadRequest("body", "invalid JSON payload", err))
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.WriteError(w, common.BadRequest("qty", "quantity must not be negative", err))
			return
		}
	}

	entry := Entry{Qty: req.Qty, Unit: req.Unit, Price: req.Price}
	if err := h.Session.SetEntry(product, entry); err != nil {
		common.WriteError(w, mapEntryErr(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entryResponse{
		Product: product,
		Qty:     entry.Qty,
		Unit:    entry.Unit,
		Price:   entry.Price.StringFixed(2),
	}})
}

// Entries handles GET /api/v1/session, listing current inputs in catalog
// order.
func (h *Handler) Entries(w http.ResponseWriter, r *http.Request) {
	names := h.Session.Catalog().Names()
	items := make([]entryResponse, 0, len(names))
	for _, name := range names {
		e, ok := h.Session.Entry(name)
		if !ok {
			e = Entry{}
		}
		items = append(items, entryResponse{
			Product: name,
			Qty:     e.Qty,
			Unit:    e.Unit,
			Price:   e.Price.StringFixed(2),
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// Reset handles POST /api/v1/session/reset, zeroing every entry and
// discarding the current bill.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Session.Reset()
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]bool{"reset": true}})
}

func mapEntryErr(err error) error {
	switch {
	case errors.Is(err, ErrNegativeQty):
		return common.BadRequest("qty", "quantity must not be negative", err)
	case errors.Is(err, ErrNegativePrice):
		return common.BadRequest("price", "unit price must not be negative", err)
	case errors.Is(err, catalog.ErrNotFound):
		return common.NotFound("product not found", err)
	default:
		return err
	}
}

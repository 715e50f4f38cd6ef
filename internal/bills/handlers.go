// Package bills exposes the bill generation, export, and share endpoints.
// The computed bill is an immutable snapshot held by the session until the
// next generation or reset; exporters consume it and discard.
package bills

import (
	"errors"
	"net/http"
	"time"

	"github.com/noah-isme/backend-billing/internal/billing"
	"github.com/noah-isme/backend-billing/internal/common"
	"github.com/noah-isme/backend-billing/internal/export"
	"github.com/noah-isme/backend-billing/internal/obs"
	"github.com/noah-isme/backend-billing/internal/session"
	"github.com/noah-isme/backend-billing/internal/share"
)

// Handler wires the session state to the billing engine and exporters.
type Handler struct {
	Session *session.Session
	Engine  billing.Engine
	Bitmap  *export.Bitmap
}

type itemDTO struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
	Unit    string `json:"unit"`
	Price   string `json:"price"`
	Amount  string `json:"amount"`
}

type billDTO struct {
	ID    string    `json:"id"`
	Store string    `json:"store"`
	Date  string    `json:"date"`
	Items []itemDTO `json:"items"`
	Total string    `json:"total"`
}

// Generate handles POST /api/v1/bills. Items with zero quantity or price are
// silently excluded; when nothing qualifies the generation aborts with
// EMPTY_BILL and no artifact is produced.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	items := h.Session.Collect()
	if len(items) == 0 {
		countBill("empty")
		common.WriteError(w, common.Unprocessable("EMPTY_BILL",
			"enter at least one item with quantity and price", billing.ErrEmptyBill))
		return
	}
	bill := h.Engine.Compute(items)
	h.Session.SetBill(bill)
	countBill("ok")
	common.JSON(w, http.StatusCreated, map[string]any{"data": toDTO(bill)})
}

// Current handles GET /api/v1/bills/current.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.Session.Bill()
	if !ok {
		common.WriteError(w, common.NotFound("no bill generated yet", billing.ErrEmptyBill))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toDTO(bill)})
}

// ExportText handles GET /api/v1/bills/current/text.
func (h *Handler) ExportText(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.Session.Bill()
	if !ok {
		common.WriteError(w, common.NotFound("no bill generated yet", billing.ErrEmptyBill))
		return
	}
	data := h.observe("text", func() ([]byte, error) { return export.Text(bill), nil }, w)
	if data == nil {
		return
	}
	common.Attachment(w, "bill.txt", "text/plain; charset=utf-8", data)
}

// ExportImage handles GET /api/v1/bills/current/image.
func (h *Handler) ExportImage(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.Session.Bill()
	if !ok {
		common.WriteError(w, common.NotFound("no bill generated yet", billing.ErrEmptyBill))
		return
	}
	data := h.observe("image", func() ([]byte, error) {
		return h.Bitmap.Render(billing.FormatText(bill))
	}, w)
	if data == nil {
		return
	}
	common.Attachment(w, "bill.jpg", "image/jpeg", data)
}

// ExportPDF handles GET /api/v1/bills/current/pdf.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.Session.Bill()
	if !ok {
		common.WriteError(w, common.NotFound("no bill generated yet", billing.ErrEmptyBill))
		return
	}
	data := h.observe("pdf", func() ([]byte, error) { return export.PDF(bill) }, w)
	if data == nil {
		return
	}
	common.Attachment(w, "bill.pdf", "application/pdf", data)
}

// Share handles GET /api/v1/bills/current/share?channel=whatsapp|email|sms,
// returning a share-intent URL pre-filled with the receipt text.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.Session.Bill()
	if !ok {
		common.WriteError(w, common.NotFound("no bill generated yet", billing.ErrEmptyBill))
		return
	}
	channel := r.URL.Query().Get("channel")
	link, err := share.Link(channel, bill.Store+" bill", billing.FormatText(bill))
	if err != nil {
		if errors.Is(err, share.ErrUnknownChannel) {
			common.WriteError(w, common.BadRequest("channel", "channel must be whatsapp, email, or sms", err))
			return
		}
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{
		"channel": channel,
		"url":     link,
	}})
}

// observe runs one export render, records metrics, and writes the error
// response on failure. A nil return means the response was already written.
func (h *Handler) observe(format string, render func() ([]byte, error), w http.ResponseWriter) []byte {
	start := time.Now()
	data, err := render()
	if obs.ExportDuration != nil {
		obs.ExportDuration.WithLabelValues(format).Observe(float64(time.Since(start)) / float64(time.Millisecond))
	}
	if err != nil {
		countExport(format, "error")
		common.WriteError(w, &common.AppError{
			Code:       "ENCODING_FAILED",
			Message:    err.Error(),
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		})
		return nil
	}
	countExport(format, "ok")
	return data
}

func toDTO(b billing.Bill) billDTO {
	items := make([]itemDTO, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, itemDTO{
			Product: it.Product,
			Qty:     it.Qty,
			Unit:    it.Unit,
			Price:   it.Price.StringFixed(2),
			Amount:  it.Amount.StringFixed(2),
		})
	}
	return billDTO{
		ID:    b.ID.String(),
		Store: b.Store,
		Date:  b.Date.Format("02-01-2006"),
		Items: items,
		Total: b.Total.StringFixed(2),
	}
}

func countBill(result string) {
	if obs.BillsGeneratedTotal != nil {
		obs.BillsGeneratedTotal.WithLabelValues(result).Inc()
	}
}

func countExport(format, result string) {
	if obs.ExportsTotal != nil {
		obs.ExportsTotal.WithLabelValues(format, result).Inc()
	}
}

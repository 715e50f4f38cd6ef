package bills_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-billing/internal/billing"
	"github.com/noah-isme/backend-billing/internal/bills"
	"github.com/noah-isme/backend-billing/internal/catalog"
	"github.com/noah-isme/backend-billing/internal/export"
	"github.com/noah-isme/backend-billing/internal/session"
)

func newServer(t *testing.T, products []string) (http.Handler, *session.Session) {
	t.Helper()
	s := session.New(catalog.New(products))
	h := &bills.Handler{
		Session: s,
		Engine: billing.Engine{
			Store: "Om Guru Store",
			Now: func() time.Time {
				return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
			},
		},
		Bitmap: &export.Bitmap{},
	}
	r := chi.NewRouter()
	r.Post("/api/v1/bills", h.Generate)
	r.Get("/api/v1/bills/current", h.Current)
	r.Get("/api/v1/bills/current/text", h.ExportText)
	r.Get("/api/v1/bills/current/image", h.ExportImage)
	r.Get("/api/v1/bills/current/pdf", h.ExportPDF)
	r.Get("/api/v1/bills/current/share", h.Share)
	return r, s
}

func fillScenario(t *testing.T, s *session.Session) {
	t.Helper()
	require.NoError(t, s.SetEntry("Rice", session.Entry{
		Qty: 2, Unit: "kg", Price: decimal.RequireFromString("50"),
	}))
	require.NoError(t, s.SetEntry("Oil", session.Entry{
		Qty: 1, Unit: "L", Price: decimal.RequireFromString("180"),
	}))
}

func generate(t *testing.T, router http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bills", nil))
	return rec
}

func TestGenerate(t *testing.T) {
	router, s := newServer(t, []string{"Rice", "Oil"})
	fillScenario(t, s)

	rec := generate(t, router)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data struct {
			ID    string `json:"id"`
			Store string `json:"store"`
			Date  string `json:"date"`
			Items []struct {
				Product string `json:"product"`
				Amount  string `json:"amount"`
			} `json:"items"`
			Total string `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ID)
	require.Equal(t, "Om Guru Store", resp.Data.Store)
	require.Equal(t, "05-03-2024", resp.Data.Date)
	require.Len(t, resp.Data.Items, 2)
	require.Equal(t, "Rice", resp.Data.Items[0].Product)
	require.Equal(t, "100.00", resp.Data.Items[0].Amount)
	require.Equal(t, "280.00", resp.Data.Total)
}

func TestGenerateEmptyBill(t *testing.T) {
	router, _ := newServer(t, []string{"Rice"})

	rec := generate(t, router)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "EMPTY_BILL")
}

func TestCurrentBeforeGenerate(t *testing.T) {
	router, _ := newServer(t, []string{"Rice"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bills/current", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportTextAttachment(t *testing.T) {
	router, s := newServer(t, []string{"Rice", "Oil"})
	fillScenario(t, s)
	require.Equal(t, http.StatusCreated, generate(t, router).Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bills/current/text", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "bill.txt")
	require.Contains(t, rec.Body.String(), "Rice")
	require.Contains(t, rec.Body.String(), "280.00")
}

func TestExportImageIsJPEG(t *testing.T) {
	router, s := newServer(t, []string{"Rice", "Oil"})
	fillScenario(t, s)
	require.Equal(t, http.StatusCreated, generate(t, router).Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bills/current/image", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0xff, 0xd8}))
}

func TestExportPDFIsPDF(t *testing.T) {
	router, s := newServer(t, []string{"Rice", "Oil"})
	fillScenario(t, s)
	require.Equal(t, http.StatusCreated, generate(t, router).Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bills/current/pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestShareWhatsApp(t *testing.T) {
	router, s := newServer(t, []string{"Rice", "Oil"})
	fillScenario(t, s)
	require.Equal(t, http.StatusCreated, generate(t, router).Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bills/current/share?channel=whatsapp", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Channel string `json:"channel"`
			URL     string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "whatsapp", resp.Data.Channel)
	require.Contains(t, resp.Data.URL, "https://wa.me/?text=")
	require.Contains(t, resp.Data.URL, "%0A")
	require.NotContains(t, resp.Data.URL, "\n")
}

func TestShareUnknownChannel(t *testing.T) {
	router, s := newServer(t, []string{"Rice"})
	require.NoError(t, s.SetEntry("Rice", session.Entry{
		Qty: 1, Unit: "kg", Price: decimal.RequireFromString("10"),
	}))
	require.Equal(t, http.StatusCreated, generate(t, router).Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bills/current/share?channel=fax", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s stubChecker) PingExporters(_ context.Context, _ time.Duration) error {
	return s.err
}

func TestLive(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler{}.Live(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestReadyOK(t *testing.T) {
	SetReady(true)
	h := Handler{Checker: stubChecker{}}

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"exporters":"ok"`)
}

func TestReadyExporterFailure(t *testing.T) {
	SetReady(true)
	h := Handler{Checker: stubChecker{err: errors.New("render stalled")}}

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "render stalled")
}

func TestReadyDuringShutdown(t *testing.T) {
	SetReady(false)
	t.Cleanup(func() { SetReady(true) })
	h := Handler{Checker: stubChecker{}}

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "shutting down")
}

func TestReadyWithoutChecker(t *testing.T) {
	SetReady(true)
	rec := httptest.NewRecorder()
	Handler{}.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Checker probes the dependencies a billing session needs to serve exports.
type Checker interface {
	PingExporters(ctx context.Context, timeout time.Duration) error
}

// notReady flips once shutdown begins so load balancers drain the instance.
// Zero value means ready.
var notReady atomic.Bool

// SetReady toggles the readiness gate.
func SetReady(ready bool) {
	notReady.Store(!ready)
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker       Checker
	ExportTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the shutdown gate and an exporter probe.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if notReady.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	exportStatus := "ok"
	if err := h.Checker.PingExporters(r.Context(), h.exportTimeout()); err != nil {
		exportStatus = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	if exportStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"exporters": exportStatus})
}

func (h Handler) exportTimeout() time.Duration {
	if h.ExportTimeout <= 0 {
		return 500 * time.Millisecond
	}
	return h.ExportTimeout
}

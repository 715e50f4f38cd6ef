package obs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHTTPObsLabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics("billing", reg)

	r := chi.NewRouter()
	r.Use(RoutePatternMiddleware)
	r.Use(HTTPObs{Metrics: metrics}.Middleware)
	r.Get("/api/v1/products/{index}/entry", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/api/v1/products/0/entry", "/api/v1/products/7/entry"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Both requests collapse into one series keyed by the route pattern.
	count := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(
		http.MethodGet, "/api/v1/products/{index}/entry", "200"))
	require.Equal(t, 2.0, count)
}

func TestHTTPObsRecordsStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics("billing", reg)

	r := chi.NewRouter()
	r.Use(RoutePatternMiddleware)
	r.Use(HTTPObs{Metrics: metrics}.Middleware)
	r.Post("/api/v1/bills", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bills", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	count := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(
		http.MethodPost, "/api/v1/bills", "422"))
	require.Equal(t, 1.0, count)
}

func TestStatusRecorderDefaultsTo200(t *testing.T) {
	rec := NewStatusRecorder(httptest.NewRecorder())
	n, err := rec.Write([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, http.StatusOK, rec.Status())
	require.Equal(t, int64(2), rec.BytesWritten())
}

func TestNewHTTPMetricsTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewHTTPMetrics("billing", reg)
	second := NewHTTPMetrics("billing", reg)
	require.Same(t, first.ReqTotal, second.ReqTotal)
}

func TestMustRegisterDomainMetrics(t *testing.T) {
	MustRegisterDomainMetrics("billing", prometheus.NewRegistry())
	require.NotNil(t, BillsGeneratedTotal)
	require.NotNil(t, ExportsTotal)
	require.NotNil(t, ExportDuration)

	BillsGeneratedTotal.WithLabelValues("ok").Inc()
	require.GreaterOrEqual(t, testutil.ToFloat64(BillsGeneratedTotal.WithLabelValues("ok")), 1.0)
}

package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// BillsGeneratedTotal counts bill generation attempts by outcome.
	BillsGeneratedTotal *prometheus.CounterVec
	// ExportsTotal counts export renders by format and outcome.
	ExportsTotal *prometheus.CounterVec
	// ExportDuration records export render latency in milliseconds by format.
	ExportDuration *prometheus.HistogramVec
)

// MustRegisterDomainMetrics initialises and registers the billing domain
// collectors. Safe to call more than once.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		BillsGeneratedTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_generated_total",
			Help:      "Count of bill generation attempts by outcome.",
		}, []string{"result"}))
		ExportsTotal = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Count of export renders by format and outcome.",
		}, []string{"format", "result"}))
		ExportDuration = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_ms",
			Help:      "Export render latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"format"}))
	})
}

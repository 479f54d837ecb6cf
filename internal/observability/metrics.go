package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_http_requests_total",
		Help: "HTTP requests handled by the location API, by method and status",
	}, []string{"method", "status"})
	LocationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypost_locations_created_total",
		Help: "Location records inserted into the store",
	})
	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "waypost_store_errors_total",
		Help: "Failed store operations",
	})
	RequestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waypost_http_request_latency_seconds",
		Help:    "Latency of location API requests",
		Buckets: prometheus.DefBuckets,
	})
)

// ObserveRequestLatency records the elapsed time of one API request.
func ObserveRequestLatency(start time.Time) {
	RequestLatency.Observe(time.Since(start).Seconds())
}

// MetricsHandler serves prometheus metrics plus a trivial health probe.
func MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

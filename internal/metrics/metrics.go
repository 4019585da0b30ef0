// Package metrics exposes Prometheus collectors for the frontend: backend
// call outcomes and latency, page requests, and listing loader state.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendRequests counts backend API calls by method, endpoint and status
	// ("error" for transport failures).
	BackendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "limpopo_backend_requests_total",
		Help: "Total number of backend API calls by method, endpoint and status",
	}, []string{"method", "endpoint", "status"})

	// BackendLatency records backend API call latency.
	BackendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "limpopo_backend_request_duration_seconds",
		Help:    "Backend API call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	// HTTPRequests counts frontend requests by route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "limpopo_http_requests_total",
		Help: "Total number of frontend HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// ListingLoadsInFlight is the number of listing fetches currently running.
	ListingLoadsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "limpopo_listing_loads_in_flight",
		Help: "Number of listing collection fetches in flight",
	})

	// StaleListingResponses counts fetch results discarded because a newer
	// generation had already been applied.
	StaleListingResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "limpopo_listing_stale_responses_total",
		Help: "Listing fetch results dropped by the generation guard",
	})

	// RefDataCache counts reference data cache lookups by kind and result.
	RefDataCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "limpopo_refdata_cache_total",
		Help: "Reference data cache lookups by kind and result (hit, miss, error)",
	}, []string{"kind", "result"})
)

// TrackBackendCall starts a latency timer and returns a function that
// records the outcome when called with the response status.
func TrackBackendCall(method, endpoint string) func(status string) {
	start := time.Now()
	return func(status string) {
		BackendLatency.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
		BackendRequests.WithLabelValues(method, endpoint, status).Inc()
	}
}

// EndpointLabel collapses per-ad paths so that ad ids do not explode the
// label cardinality: /api/ads/123 becomes /api/ads/:id.
func EndpointLabel(path string) string {
	const adsPrefix = "/api/ads/"
	if strings.HasPrefix(path, adsPrefix) && len(path) > len(adsPrefix) {
		return adsPrefix + ":id"
	}
	return path
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Companion API metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint", "status"},
	)

	CompanionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "companions_created_total",
			Help:      "Companions created, by origin",
		},
		[]string{"origin"},
	)

	CreationDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "creation_denied_total",
			Help:      "Companion creations refused by the entitlement policy",
		},
	)

	BookmarkWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "bookmark_writes_total",
			Help:      "Bookmark add/remove attempts",
		},
		[]string{"operation", "status"},
	)

	BookmarkPartialFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "bookmark_partial_failures_total",
			Help:      "Bookmark writes where the row changed but the companion flag did not",
		},
		[]string{"operation"},
	)

	ViewInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "view_invalidations_total",
			Help:      "View cache invalidations",
		},
		[]string{"path", "status"},
	)

	ViewCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "view_cache_lookups_total",
			Help:      "View cache lookups by result",
		},
		[]string{"path", "result"},
	)

	EntitlementLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "companion_api",
			Name:      "entitlement_lookups_total",
			Help:      "Remote entitlement lookups",
		},
		[]string{"source", "status"},
	)
)

// RecordRequest records an HTTP request.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(duration)
}

func RecordCompanionCreated(origin string) {
	CompanionsCreatedTotal.WithLabelValues(origin).Inc()
}

func RecordCreationDenied() {
	CreationDeniedTotal.Inc()
}

// RecordBookmarkWrite records the outcome of a bookmark write. partial marks a write whose
// row step succeeded while the flag step failed.
func RecordBookmarkWrite(operation string, err error, partial bool) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	BookmarkWritesTotal.WithLabelValues(operation, status).Inc()
	if partial {
		BookmarkPartialFailuresTotal.WithLabelValues(operation).Inc()
	}
}

// viewPaths are the rendered views; any other path shares the "other" label.
var viewPaths = map[string]struct{}{
	"/":           {},
	"/companions": {},
}

func viewLabel(path string) string {
	if _, ok := viewPaths[path]; ok {
		return path
	}
	return "other"
}

func RecordViewInvalidation(path, status string) {
	ViewInvalidationsTotal.WithLabelValues(viewLabel(path), status).Inc()
}

func RecordViewCacheLookup(path, result string) {
	ViewCacheLookupsTotal.WithLabelValues(viewLabel(path), result).Inc()
}

func RecordEntitlementLookup(source, status string) {
	EntitlementLookupsTotal.WithLabelValues(source, status).Inc()
}

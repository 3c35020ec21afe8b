package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Activity metrics
	ActivityOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_operations_total",
			Help: "Total number of activity operations",
		},
		[]string{"operation"}, // create, update, delete
	)

	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "activity_subscriptions_active",
			Help: "Currently open activity snapshot subscriptions",
		},
	)

	// Authentication metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, login/refresh/2fa
	)

	// Export/upload metrics
	ExportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "csv_exports_total",
			Help: "Total number of CSV exports served",
		},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Total number of attachment uploads",
		},
		[]string{"status"}, // stored/rejected/failed
	)

	// Cache metrics
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache lookups by outcome",
		},
		[]string{"cache", "outcome"}, // hit/miss
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type and reason",
		},
		[]string{"type", "reason"},
	)
)

// TrackDBOperation times a database operation.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

func TrackActivityOperation(operation string) {
	ActivityOperationsTotal.WithLabelValues(operation).Inc()
}

func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

func TrackCacheOperation(cache string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheOperations.WithLabelValues(cache, outcome).Inc()
}

func TrackError(errType, reason string) {
	ErrorsTotal.WithLabelValues(errType, reason).Inc()
}

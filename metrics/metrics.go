package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOperationDuration *prometheus.HistogramVec

	PropertyOperationsCounter *prometheus.CounterVec
	PropertyViewsCounter      *prometheus.CounterVec
	InquiriesCounter          prometheus.Counter
)

// Init registers all collectors under the given prefix. Call once at
// startup, before any request is served.
func Init(prefix string) {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	PropertyOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_property_operations_total",
			Help: "Total number of property mutations",
		},
		[]string{"operation"},
	)

	PropertyViewsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_property_views_total",
			Help: "Total number of single-property fetches",
		},
		[]string{"pricing_type"},
	)

	InquiriesCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_inquiries_total",
			Help: "Total number of inquiries submitted",
		},
	)
}

// TrackDBOperation records the duration of one store call:
//
//	defer metrics.TrackDBOperation("property_list")(time.Now())
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DBOperationDuration == nil {
			return
		}
		DBOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordPropertyOperation increments the mutation counter.
func RecordPropertyOperation(operation string) {
	if PropertyOperationsCounter == nil {
		return
	}
	PropertyOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordPropertyView increments the view counter.
func RecordPropertyView(pricingType string) {
	if PropertyViewsCounter == nil {
		return
	}
	PropertyViewsCounter.WithLabelValues(pricingType).Inc()
}

// RecordInquiry increments the inquiry counter.
func RecordInquiry() {
	if InquiriesCounter == nil {
		return
	}
	InquiriesCounter.Inc()
}

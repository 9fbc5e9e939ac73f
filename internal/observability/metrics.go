// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the tracker.
type Metrics struct {
	// Subscription metrics
	NotificationsReceived prometheus.Counter
	FailedTxSkipped       prometheus.Counter
	DuplicatesSkipped     prometheus.Counter
	SignaturesDispatched  prometheus.Counter
	ActiveSubscriptions   prometheus.Gauge

	// Fetch metrics
	FetchAttempts    prometheus.Counter
	FetchRateLimited prometheus.Counter
	FetchForfeited   prometheus.Counter

	// Classification metrics
	ActivitiesClassified *prometheus.CounterVec

	// State metrics
	CursorSlot        prometheus.Gauge
	MarkWriteFailures prometheus.Counter

	// Delivery metrics
	AlertsSent     prometheus.Counter
	NotifierErrors prometheus.Counter
	ArchiveErrors  prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "sol_wallet_tracker"
	}

	return &Metrics{
		NotificationsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "notifications_received_total",
			Help:      "Total number of log notifications received",
		}),
		FailedTxSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "failed_tx_skipped_total",
			Help:      "Total number of failed transactions discarded",
		}),
		DuplicatesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "duplicates_skipped_total",
			Help:      "Total number of already-processed signatures discarded",
		}),
		SignaturesDispatched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "signatures_dispatched_total",
			Help:      "Total number of signatures dispatched to the pipeline",
		}),
		ActiveSubscriptions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "active_subscriptions",
			Help:      "Current number of live wallet subscriptions",
		}),
		FetchAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetcher",
			Name:      "attempts_total",
			Help:      "Total number of getTransaction attempts",
		}),
		FetchRateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetcher",
			Name:      "rate_limited_total",
			Help:      "Total number of attempts rejected by RPC rate limiting",
		}),
		FetchForfeited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetcher",
			Name:      "forfeited_total",
			Help:      "Total number of signatures never fetched within the retry budget; these alerts are lost permanently",
		}),
		ActivitiesClassified: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "activities_total",
			Help:      "Total number of classified activities by type",
		}, []string{"type"}),
		CursorSlot: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "state",
			Name:      "cursor_slot",
			Help:      "Highest fully-processed slot watermark",
		}),
		MarkWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "state",
			Name:      "mark_write_failures_total",
			Help:      "Total number of swallowed durable-write failures while marking signatures",
		}),
		AlertsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "alerts_sent_total",
			Help:      "Total number of alerts handed to the notifier",
		}),
		NotifierErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "errors_total",
			Help:      "Total number of notifier failures (logged and dropped)",
		}),
		ArchiveErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "archive",
			Name:      "errors_total",
			Help:      "Total number of activity archive write failures",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordNotification increments the notifications received counter.
func RecordNotification() {
	DefaultMetrics.NotificationsReceived.Inc()
}

// RecordFailedTxSkipped increments the failed transaction counter.
func RecordFailedTxSkipped() {
	DefaultMetrics.FailedTxSkipped.Inc()
}

// RecordDuplicateSkipped increments the duplicate signature counter.
func RecordDuplicateSkipped() {
	DefaultMetrics.DuplicatesSkipped.Inc()
}

// RecordDispatch increments the dispatched signature counter.
func RecordDispatch() {
	DefaultMetrics.SignaturesDispatched.Inc()
}

// UpdateActiveSubscriptions sets the live subscription gauge.
func UpdateActiveSubscriptions(n int) {
	DefaultMetrics.ActiveSubscriptions.Set(float64(n))
}

// RecordFetchAttempt increments the fetch attempt counter.
func RecordFetchAttempt() {
	DefaultMetrics.FetchAttempts.Inc()
}

// RecordFetchRateLimited increments the rate-limited counter.
func RecordFetchRateLimited() {
	DefaultMetrics.FetchRateLimited.Inc()
}

// RecordFetchForfeited increments the forfeited signature counter.
func RecordFetchForfeited() {
	DefaultMetrics.FetchForfeited.Inc()
}

// RecordActivity increments the classified activity counter for a type.
func RecordActivity(activityType string) {
	DefaultMetrics.ActivitiesClassified.WithLabelValues(activityType).Inc()
}

// UpdateCursorSlot sets the watermark gauge.
func UpdateCursorSlot(slot int64) {
	DefaultMetrics.CursorSlot.Set(float64(slot))
}

// RecordMarkWriteFailure increments the swallowed durable-write failure counter.
func RecordMarkWriteFailure() {
	DefaultMetrics.MarkWriteFailures.Inc()
}

// RecordAlertSent increments the alerts sent counter.
func RecordAlertSent() {
	DefaultMetrics.AlertsSent.Inc()
}

// RecordNotifierError increments the notifier failure counter.
func RecordNotifierError() {
	DefaultMetrics.NotifierErrors.Inc()
}

// RecordArchiveError increments the archive failure counter.
func RecordArchiveError() {
	DefaultMetrics.ArchiveErrors.Inc()
}

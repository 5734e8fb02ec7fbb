// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry metrics
	TicksDeployed   prometheus.Counter
	MintsTotal      prometheus.Counter
	MintedAmount    prometheus.Counter
	OperationErrors *prometheus.CounterVec

	// Chunk metrics
	ChunksCreated   prometheus.Counter
	ChunksDestroyed prometheus.Counter
	LiveChunks      prometheus.Gauge

	// Fee metrics
	FeePool prometheus.Gauge

	// Latency metrics
	OperationDuration *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Event hub metrics
	WSSubscribers      prometheus.Gauge
	SnapshotsPublished *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tickmint"
	}

	return &Metrics{
		// Registry metrics
		TicksDeployed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "ticks_deployed_total",
			Help:      "Total number of ticks deployed",
		}),
		MintsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "mints_total",
			Help:      "Total number of successful mints",
		}),
		MintedAmount: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "minted_amount_total",
			Help:      "Total amount minted across all ticks",
		}),
		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operation_errors_total",
			Help:      "Total number of rejected operations by operation and reason",
		}, []string{"operation", "reason"}),

		// Chunk metrics
		ChunksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chunks",
			Name:      "created_total",
			Help:      "Total number of chunks created",
		}),
		ChunksDestroyed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chunks",
			Name:      "destroyed_total",
			Help:      "Total number of chunks destroyed",
		}),
		LiveChunks: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "chunks",
			Name:      "live",
			Help:      "Current number of live chunks",
		}),

		// Fee metrics
		FeePool: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "fee_pool",
			Help:      "Accumulated mint fees in the registry fee pool",
		}),

		// Latency metrics
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operation_duration_seconds",
			Help:      "Registry operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Event hub metrics
		WSSubscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "ws_subscribers",
			Help:      "Current number of websocket subscribers",
		}),
		SnapshotsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "snapshots_published_total",
			Help:      "Total number of snapshots published by type",
		}, []string{"type"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordTickDeployed increments the ticks deployed counter.
func RecordTickDeployed() {
	DefaultMetrics.TicksDeployed.Inc()
}

// RecordMint records a successful mint of the given amount.
func RecordMint(amount uint64) {
	DefaultMetrics.MintsTotal.Inc()
	DefaultMetrics.MintedAmount.Add(float64(amount))
}

// RecordOperationError records a rejected operation with its reason.
func RecordOperationError(operation, reason string) {
	DefaultMetrics.OperationErrors.WithLabelValues(operation, reason).Inc()
}

// RecordChunksReplaced records a chunk replacement and adjusts the live gauge.
func RecordChunksReplaced(destroyed, created int) {
	DefaultMetrics.ChunksDestroyed.Add(float64(destroyed))
	DefaultMetrics.ChunksCreated.Add(float64(created))
	DefaultMetrics.LiveChunks.Add(float64(created - destroyed))
}

// UpdateFeePool updates the fee pool gauge.
func UpdateFeePool(feePool uint64) {
	DefaultMetrics.FeePool.Set(float64(feePool))
}

// RecordOperationDuration records the duration of a registry operation.
func RecordOperationDuration(operation string, seconds float64) {
	DefaultMetrics.OperationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// UpdateWSSubscribers updates the websocket subscriber gauge.
func UpdateWSSubscribers(count int) {
	DefaultMetrics.WSSubscribers.Set(float64(count))
}

// RecordSnapshotPublished increments the published snapshot counter by type.
func RecordSnapshotPublished(snapshotType string) {
	DefaultMetrics.SnapshotsPublished.WithLabelValues(snapshotType).Inc()
}

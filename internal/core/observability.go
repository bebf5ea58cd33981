package core

import (
	"context"
	"expvar"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"propertycore/pkg/domain"
)

// MetricsRecorder observes coordinator operations and reconciliation
// outcomes.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
	ObserveReconciliation(ctx context.Context, counts map[domain.PaymentStanding]int)
}

// NopMetricsRecorder discards all observations.
type NopMetricsRecorder struct{}

// Observe implements MetricsRecorder.
func (NopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// ObserveReconciliation implements MetricsRecorder.
func (NopMetricsRecorder) ObserveReconciliation(context.Context, map[domain.PaymentStanding]int) {}

// ExpvarMetricsRecorder publishes operation counters and the reconciliation
// standing distribution on the process expvar surface. Useful for installs
// without a Prometheus scrape target.
type ExpvarMetricsRecorder struct {
	operations *expvar.Map
	standings  *expvar.Map
}

// NewExpvarMetricsRecorder publishes the maps under the given name prefix.
// Expvar names are process-global and re-publishing a name panics, so
// construct at most one recorder per prefix per process.
func NewExpvarMetricsRecorder(prefix string) *ExpvarMetricsRecorder {
	if prefix == "" {
		prefix = "propertycore"
	}
	return &ExpvarMetricsRecorder{
		operations: expvar.NewMap(prefix + ".operations"),
		standings:  expvar.NewMap(prefix + ".tenants_by_standing"),
	}
}

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, _ time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operations.Add(operation+"."+status, 1)
}

// ObserveReconciliation implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) ObserveReconciliation(_ context.Context, counts map[domain.PaymentStanding]int) {
	for _, standing := range []domain.PaymentStanding{
		domain.StandingPendingRegistration,
		domain.StandingCurrent,
		domain.StandingOverdue,
		domain.StandingInactive,
	} {
		v := new(expvar.Int)
		v.Set(int64(counts[standing]))
		r.standings.Set(string(standing), v)
	}
}

// PrometheusMetricsRecorder publishes operation counters, durations, and the
// tenant standing distribution to a Prometheus registerer.
type PrometheusMetricsRecorder struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	standings  *prometheus.GaugeVec
}

// NewPrometheusMetricsRecorder constructs and registers the collectors.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	r := &PrometheusMetricsRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "propertycore_operations_total",
			Help: "Coordinator operations by name and outcome.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "propertycore_operation_duration_seconds",
			Help:    "Coordinator operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		standings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "propertycore_tenants_by_standing",
			Help: "Tenant count per payment standing after the last reconciliation.",
		}, []string{"standing"}),
	}
	for _, c := range []prometheus.Collector{r.operations, r.durations, r.standings} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveReconciliation implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) ObserveReconciliation(_ context.Context, counts map[domain.PaymentStanding]int) {
	for _, standing := range []domain.PaymentStanding{
		domain.StandingPendingRegistration,
		domain.StandingCurrent,
		domain.StandingOverdue,
		domain.StandingInactive,
	} {
		r.standings.WithLabelValues(string(standing)).Set(float64(counts[standing]))
	}
}

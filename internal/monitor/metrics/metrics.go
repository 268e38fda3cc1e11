package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

// Metrics provides observability for the monitor pipeline. Registered once
// at process start; server mode exposes them on /metrics.
type Metrics struct {
	EventsProcessed  *prometheus.CounterVec
	NonRootRejected  prometheus.Counter
	AliasFallbacks   prometheus.Counter
	DispatchFailures prometheus.Counter
}

// New creates a Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		EventsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "root_monitor_events_processed_total",
			Help: "Root activity events processed, by severity tier",
		}, []string{"severity"}),
		NonRootRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "root_monitor_non_root_rejected_total",
			Help: "Events rejected by the root-identity precondition",
		}),
		AliasFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "root_monitor_alias_fallbacks_total",
			Help: "Alias lookups that degraded to the raw account ID",
		}),
		DispatchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "root_monitor_dispatch_failures_total",
			Help: "Notifications the channel refused to accept",
		}),
	}
}

// IncProcessed records one processed event at the given tier.
func (m *Metrics) IncProcessed(severity models.Severity) {
	m.EventsProcessed.WithLabelValues(severity.String()).Inc()
}

// IncNonRootRejected records one precondition rejection.
func (m *Metrics) IncNonRootRejected() {
	m.NonRootRejected.Inc()
}

// IncAliasFallback records one degraded alias resolution.
func (m *Metrics) IncAliasFallback() {
	m.AliasFallbacks.Inc()
}

// IncDispatchFailure records one failed publish.
func (m *Metrics) IncDispatchFailure() {
	m.DispatchFailures.Inc()
}

// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"sync"
	"time"

	"lastmile/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// DispatchRuns counts dispatch runs by trigger and outcome.
	DispatchRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_runs_total", Help: "Dispatch runs by trigger and outcome."},
		[]string{"trigger", "outcome"},
	)
	DispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_duration_seconds",
			Help:    "Dispatch run duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"trigger"},
	)
	// DispatchBatches counts candidate batches by assignment state.
	DispatchBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_batches_total", Help: "Candidate batches by assignment state."},
		[]string{"state"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(DispatchRuns)
		Registry.MustRegister(DispatchDuration)
		Registry.MustRegister(DispatchBatches)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// DispatchObserver records dispatch outcomes. It implements commands.DispatchObserver.
type DispatchObserver struct{}

var _ commands.DispatchObserver = DispatchObserver{}

func (DispatchObserver) ObserveDispatch(trigger string, result commands.DispatchResult, elapsed time.Duration) {
	DispatchRuns.WithLabelValues(trigger, "success").Inc()
	DispatchDuration.WithLabelValues(trigger).Observe(elapsed.Seconds())
	DispatchBatches.WithLabelValues("assigned").Add(float64(result.Assigned))
	DispatchBatches.WithLabelValues("unassigned").Add(float64(result.Unassigned))
}

func (DispatchObserver) ObserveDispatchFailure(trigger string) {
	DispatchRuns.WithLabelValues(trigger, "failure").Inc()
}

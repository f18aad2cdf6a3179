// Package observability exposes Prometheus metrics for workflow runs and
// completion calls, wired in through domain.LifecycleHooks and a Completer
// decorator.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/ports"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	stepsTotal   *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	llmRequests  *prometheus.CounterVec
}

// NewMetrics registers the skillet collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		stepsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skillet_steps_total",
				Help: "Total number of workflow step executions",
			},
			[]string{"node"},
		),
		stepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skillet_step_duration_seconds",
				Help:    "Duration of workflow step executions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"node"},
		),
		llmRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skillet_llm_requests_total",
				Help: "Total number of completion service requests",
			},
			[]string{"outcome"},
		),
	}
}

// Hooks returns lifecycle hooks that record step counts and durations.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			m.stepsTotal.WithLabelValues(e.NodeID).Inc()
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			m.stepDuration.WithLabelValues(e.NodeID).Observe(e.Duration.Seconds())
		},
	}
}

// InstrumentCompleter wraps a Completer so every call increments the request
// counter with an ok or error outcome.
func (m *Metrics) InstrumentCompleter(next ports.Completer) ports.Completer {
	return ports.CompleterFunc(func(ctx context.Context, req ports.CompletionRequest) (string, error) {
		out, err := next.Complete(ctx, req)
		if err != nil {
			m.llmRequests.WithLabelValues("error").Inc()
			return out, err
		}
		m.llmRequests.WithLabelValues("ok").Inc()
		return out, nil
	})
}

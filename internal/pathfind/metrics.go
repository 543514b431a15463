package pathfind

import "github.com/prometheus/client_golang/prometheus"

// Query outcomes reported by Metrics.
const (
	outcomeFound       = "found"
	outcomeUnreachable = "unreachable"
	outcomeFailed      = "failed"
	outcomeCanceled    = "canceled"
)

// Metrics collects search engine counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	slices     prometheus.Counter
	expansions prometheus.Counter
	results    *prometheus.CounterVec
	pending    prometheus.Gauge
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		slices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilenav",
			Subsystem: "search",
			Name:      "slices_total",
			Help:      "Calculate calls that had pending queries.",
		}),
		expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tilenav",
			Subsystem: "search",
			Name:      "expansions_total",
			Help:      "Open-set nodes popped across all queries.",
		}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tilenav",
			Subsystem: "search",
			Name:      "queries_total",
			Help:      "Terminated path queries by outcome.",
		}, []string{"outcome"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tilenav",
			Subsystem: "search",
			Name:      "pending_queries",
			Help:      "Queries still expanding after the last slice.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.slices, m.expansions, m.results, m.pending)
	}
	return m
}

func (m *Metrics) slice(expanded, pending int) {
	if m == nil {
		return
	}
	m.slices.Inc()
	m.expansions.Add(float64(expanded))
	m.pending.Set(float64(pending))
}

func (m *Metrics) setPending(n int) {
	if m == nil {
		return
	}
	m.pending.Set(float64(n))
}

func (m *Metrics) result(outcome string) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(outcome).Inc()
}

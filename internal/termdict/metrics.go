package termdict

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "gosubseq"
	metricsSubsystem = "termdict"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeLimit   = "limit"
	OutcomeTimeout = "timeout"
	OutcomeError   = "error"
)

// Metrics collects search statistics. A nil *Metrics records nothing.
type Metrics struct {
	searches      *prometheus.CounterVec
	statesVisited prometheus.Counter
	termsMatched  prometheus.Counter
	shortCircuits prometheus.Counter
}

// NewMetrics creates the search metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "searches_total",
				Help:      "Number of term dictionary searches by outcome",
			},
			[]string{"outcome"},
		),
		statesVisited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "states_visited_total",
				Help:      "Number of dictionary nodes stepped through by automata",
			},
		),
		termsMatched: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "terms_matched_total",
				Help:      "Number of terms returned by searches",
			},
		),
		shortCircuits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "short_circuits_total",
				Help:      "Number of subtrees emitted without stepping because the automaton will always match",
			},
		),
	}
	reg.MustRegister(m.searches, m.statesVisited, m.termsMatched, m.shortCircuits)
	return m
}

func (m *Metrics) observe(res *Result, err error) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome(err)).Inc()
	if res == nil {
		return
	}
	m.statesVisited.Add(float64(res.StatesVisited))
	m.termsMatched.Add(float64(len(res.Terms)))
	m.shortCircuits.Add(float64(res.ShortCircuits))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrStateLimitExceeded), errors.Is(err, ErrMatchLimitExceeded):
		return OutcomeLimit
	case errors.Is(err, ErrSearchTimeout):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/Scoreboard/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons used as the "reason" label on RejectedUpdates.
const (
	ReasonNegativeScore = "negative_score"
	ReasonIllegal       = "illegal_transition"
	ReasonNoSuchMatch   = "no_such_match"
	ReasonOther         = "other"
)

// Metrics provides observability for the match registry.
// Tracks match lifecycle counts, rejected score updates and lock wait time.
type Metrics struct {
	MatchesCreated  prometheus.Counter
	CreatesIgnored  prometheus.Counter
	MatchesFinished prometheus.Counter
	ScoreUpdates    *prometheus.CounterVec
	RejectedUpdates *prometheus.CounterVec
	ActiveMatches   prometheus.Gauge
	LockWait        prometheus.Histogram
}

// New creates a Metrics instance with all registry metrics registered on reg.
// A nil reg registers on the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		MatchesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "scoreboard_matches_created_total",
			Help: "Total number of matches added to the registry",
		}),
		CreatesIgnored: factory.NewCounter(prometheus.CounterOpts{
			Name: "scoreboard_match_creates_ignored_total",
			Help: "Create requests ignored because a team was already playing",
		}),
		MatchesFinished: factory.NewCounter(prometheus.CounterOpts{
			Name: "scoreboard_matches_finished_total",
			Help: "Total number of matches removed from the registry",
		}),
		ScoreUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreboard_score_updates_total",
			Help: "Accepted score updates by change type",
		}, []string{"change_type"}),
		RejectedUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scoreboard_score_updates_rejected_total",
			Help: "Rejected score updates by reason",
		}, []string{"reason"}),
		ActiveMatches: factory.NewGauge(prometheus.GaugeOpts{
			Name: "scoreboard_active_matches",
			Help: "Number of matches currently in the registry",
		}),
		LockWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scoreboard_lock_wait_seconds",
			Help:    "Time spent waiting for exclusive registry access",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

// IncrementCreated records a match added to the registry
func (m *Metrics) IncrementCreated() {
	m.MatchesCreated.Inc()
	m.ActiveMatches.Inc()
}

// IncrementIgnored records a create request dropped because a team was busy
func (m *Metrics) IncrementIgnored() {
	m.CreatesIgnored.Inc()
}

// IncrementFinished records a match removed from the registry
func (m *Metrics) IncrementFinished() {
	m.MatchesFinished.Inc()
	m.ActiveMatches.Dec()
}

// ObserveUpdate records an accepted score update
func (m *Metrics) ObserveUpdate(change models.ChangeType) {
	m.ScoreUpdates.WithLabelValues(string(change)).Inc()
}

// ObserveRejected records a rejected score update, labelled by error kind
func (m *Metrics) ObserveRejected(err error) {
	m.RejectedUpdates.WithLabelValues(RejectionReason(err)).Inc()
}

// ObserveLockWait records how long an operation waited for the registry lock.
// Call with time.Now() taken before acquiring.
func (m *Metrics) ObserveLockWait(start time.Time) {
	m.LockWait.Observe(time.Since(start).Seconds())
}

// RejectionReason maps an update error to its metric label
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, models.ErrNegativeScore):
		return ReasonNegativeScore
	case errors.Is(err, models.ErrIllegalScoreTransition):
		return ReasonIllegal
	case errors.Is(err, models.ErrNoSuchMatch):
		return ReasonNoSuchMatch
	default:
		return ReasonOther
	}
}

// Snapshot gathers counter and gauge totals by metric name, summed across labels.
// Histograms report their sample count.
func Snapshot(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	totals := make(map[string]float64, len(families))
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				totals[family.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				totals[family.GetName()] += metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				totals[family.GetName()] += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return totals, nil
}

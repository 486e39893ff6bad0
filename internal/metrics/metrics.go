package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travelblog"

var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of blog job runs",
		},
		[]string{"past_due"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Blog job run time distribution",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	KeywordSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keyword_selections_total",
			Help:      "Selected keywords by where they came from",
		},
		[]string{"source"}, // event seed, monthly seed, fallback
	)

	TrendQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trend_queries_total",
			Help:      "Trend lookups per seed by outcome",
		},
		[]string{"status"}, // hit, empty, error
	)

	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Blog post generations by outcome",
		},
		[]string{"status"},
	)

	Emails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Emails sent by outcome",
		},
		[]string{"status"},
	)
)

// Outcome maps an error to the status label used by the counters above.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

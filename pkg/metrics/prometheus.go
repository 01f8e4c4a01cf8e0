package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	summaries     *prometheus.CounterVec
	weekFetchErrs *prometheus.CounterVec
	transactions  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	playersRanked *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		summaries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rosterpulse_summaries_total",
				Help: "Total number of league summaries computed",
			},
			[]string{"league_id"},
		),
		weekFetchErrs: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rosterpulse_week_fetch_errors_total",
				Help: "Total number of per-week transaction fetches that failed",
			},
			[]string{"league_id"},
		),
		transactions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rosterpulse_transactions_collected_total",
				Help: "Total number of transaction records collected",
			},
			[]string{"league_id"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rosterpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		playersRanked: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rosterpulse_players_ranked",
				Help: "Number of players in the last computed leaderboard",
			},
			[]string{"league_id"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rosterpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSummary records a computed league summary and its size.
func (r *Recorder) RecordSummary(leagueID string, players int) {
	r.summaries.WithLabelValues(leagueID).Inc()
	r.playersRanked.WithLabelValues(leagueID).Set(float64(players))
}

// RecordWeekFetchError records a failed per-week fetch.
func (r *Recorder) RecordWeekFetchError(leagueID string) {
	r.weekFetchErrs.WithLabelValues(leagueID).Inc()
}

// RecordTransactions records collected transaction records.
func (r *Recorder) RecordTransactions(leagueID string, count int) {
	r.transactions.WithLabelValues(leagueID).Add(float64(count))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

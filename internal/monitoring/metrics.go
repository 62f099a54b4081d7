package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Run metrics
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_backtest_runs_total",
			Help: "Total number of simulation runs by final status",
		},
		[]string{"status"},
	)

	runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_backtest_run_duration_seconds",
			Help:    "Distribution of simulation run durations",
			Buckets: prometheus.DefBuckets,
		},
	)

	transactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_backtest_transactions_total",
			Help: "Total number of simulated transactions by reason code",
		},
		[]string{"reason"},
	)

	// Data metrics
	seriesLoaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_backtest_series_loaded_total",
			Help: "Total number of price series load attempts",
		},
		[]string{"result"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_backtest_errors_total",
			Help: "Total number of errors by category",
		},
		[]string{"category"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(runDuration)
	prometheus.MustRegister(transactionsTotal)
	prometheus.MustRegister(seriesLoaded)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordRun records a completed or failed simulation run
func RecordRun(status string, duration time.Duration) {
	runsTotal.WithLabelValues(status).Inc()
	runDuration.Observe(duration.Seconds())
}

// RecordTransaction records one simulated transaction by reason code
func RecordTransaction(reason string) {
	transactionsTotal.WithLabelValues(reason).Inc()
}

// RecordSeriesLoad records the outcome of one price series load
func RecordSeriesLoad(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	seriesLoaded.WithLabelValues(result).Inc()
}

// RecordError records an error metric by category
func RecordError(category string) {
	errorsTotal.WithLabelValues(category).Inc()
}

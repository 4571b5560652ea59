package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "ergolog"
	Subsystem = "server"
)

type Manager struct {
	// counters
	CounterRequests *prometheus.CounterVec
	CounterPanics   prometheus.Counter
	CounterImports  *prometheus.CounterVec
	CounterCharts   *prometheus.CounterVec
	CounterJobs     *prometheus.CounterVec

	// histograms
	HistRequestDuration *prometheus.HistogramVec
	HistChartRender     prometheus.Histogram
	HistJobDuration     *prometheus.HistogramVec
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager(Namespace, "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of handled requests",
		}, []string{"method", "route", "status"}),
		CounterPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handle_request_panic",
			Help:      "The total number of serve request panics",
		}),
		CounterImports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workout_imports_total",
			Help:      "Workout import attempts by source and result",
		}, []string{"source", "result"}),
		CounterCharts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "chart_renders_total",
			Help:      "Summary chart render calls by outcome",
		}, []string{"outcome"}),
		CounterJobs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_total",
			Help:      "Background jobs by name and status",
		}, []string{"job", "status"}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"route"}),
		HistChartRender: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "chart_render_duration_seconds",
			Help:      "Time from render call to settled chart",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1},
		}),
		HistJobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "job_duration_seconds",
			Help:      "Duration of background jobs in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 1, 10, 60},
		}, []string{"job"}),
	}
}

// ChartRendered records a summary chart render outcome.
func (m *Manager) ChartRendered(outcome string, elapsed time.Duration) {
	m.CounterCharts.WithLabelValues(outcome).Inc()
	m.HistChartRender.Observe(elapsed.Seconds())
}

// WorkoutImported records an import attempt.
func (m *Manager) WorkoutImported(source, result string) {
	m.CounterImports.WithLabelValues(source, result).Inc()
}

// JobFinished records a background job run.
func (m *Manager) JobFinished(name string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.CounterJobs.WithLabelValues(name, status).Inc()
	m.HistJobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

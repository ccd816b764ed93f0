package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the Prometheus metrics of one report run.
// It owns its registry so repeated runs and tests do not collide.
type Recorder struct {
	registry *prometheus.Registry

	LinesScanned     *prometheus.CounterVec
	EventsExtracted  *prometheus.CounterVec
	CategoryFailures *prometheus.CounterVec
	Indicators       *prometheus.GaugeVec
	LastRun          prometheus.Gauge
	RunDuration      prometheus.Gauge
	SinkFailures     prometheus.Counter
}

// New initializes and registers the metrics
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		LinesScanned: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "secreport",
			Subsystem: "ingest",
			Name:      "lines_scanned_total",
			Help:      "Total number of log lines scanned by category.",
		}, []string{"category"}),
		EventsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "secreport",
			Subsystem: "ingest",
			Name:      "events_extracted_total",
			Help:      "Total number of typed events extracted by category.",
		}, []string{"category"}),
		CategoryFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "secreport",
			Subsystem: "report",
			Name:      "category_failures_total",
			Help:      "Categories that failed, by reason.",
		}, []string{"category", "reason"}), // reason: not_found, unexpected
		Indicators: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "secreport",
			Subsystem: "report",
			Name:      "indicators",
			Help:      "Size of each category result in the latest report (flagged IPs, blocked IPs, alerts).",
		}, []string{"category"}),
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "secreport",
			Subsystem: "report",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the latest report was generated.",
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "secreport",
			Subsystem: "report",
			Name:      "run_duration_seconds",
			Help:      "Wall time spent analyzing all categories.",
		}),
		SinkFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "secreport",
			Subsystem: "report",
			Name:      "sink_failures_total",
			Help:      "Report persistence failures.",
		}),
	}
}

// Scanned records the line and event counts of one category scan
func (r *Recorder) Scanned(category string, lines, events int) {
	if r == nil {
		return
	}
	r.LinesScanned.WithLabelValues(category).Add(float64(lines))
	r.EventsExtracted.WithLabelValues(category).Add(float64(events))
}

// Failed records a category failure
func (r *Recorder) Failed(category, reason string) {
	if r == nil {
		return
	}
	r.CategoryFailures.WithLabelValues(category, reason).Inc()
}

// Indicator sets the result size of a category
func (r *Recorder) Indicator(category string, n int) {
	if r == nil {
		return
	}
	r.Indicators.WithLabelValues(category).Set(float64(n))
}

// Completed records the run timestamp and duration
func (r *Recorder) Completed(at time.Time, took time.Duration) {
	if r == nil {
		return
	}
	r.LastRun.Set(float64(at.Unix()))
	r.RunDuration.Set(took.Seconds())
}

// SinkFailed counts a persistence failure
func (r *Recorder) SinkFailed() {
	if r == nil {
		return
	}
	r.SinkFailures.Inc()
}

// Gatherer exposes the registry
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics in text format for the node_exporter
// textfile collector. The write is atomic.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the collectors for fetch and compute instrumentation.
type Recorder struct {
	pages           *prometheus.CounterVec
	rows            *prometheus.CounterVec
	computeDuration prometheus.Histogram
	computeFailures prometheus.Counter
	totals          *prometheus.GaugeVec
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// NewRecorder creates a recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobmetrics_fetch_pages_total",
			Help: "Pages read from the source tables.",
		}, []string{"table"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobmetrics_fetch_rows_total",
			Help: "Rows read from the source tables.",
		}, []string{"table"}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobmetrics_compute_duration_seconds",
			Help:    "Time to fetch and aggregate one metrics bundle.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		computeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobmetrics_compute_failures_total",
			Help: "Metrics computations aborted by a source fetch failure.",
		}),
		totals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "jobmetrics_window_totals",
			Help: "Totals of the most recently computed window.",
		}, []string{"total"}),
	}
	reg.MustRegister(r.pages, r.rows, r.computeDuration, r.computeFailures, r.totals)
	return r
}

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init() {
	recorderOnce.Do(func() {
		recorder = NewRecorder(prometheus.DefaultRegisterer)
	})
}

// ObservePage records one page read from table.
func ObservePage(table string, rows int) {
	if recorder == nil {
		return
	}
	recorder.pages.WithLabelValues(table).Inc()
	recorder.rows.WithLabelValues(table).Add(float64(rows))
}

// ObserveCompute records the outcome of one metrics computation.
func ObserveCompute(d time.Duration, err error, jobs, employers, regions int) {
	if recorder == nil {
		return
	}
	recorder.computeDuration.Observe(d.Seconds())
	if err != nil {
		recorder.computeFailures.Inc()
		return
	}
	recorder.totals.WithLabelValues("jobs90d").Set(float64(jobs))
	recorder.totals.WithLabelValues("employers").Set(float64(employers))
	recorder.totals.WithLabelValues("regions").Set(float64(regions))
}

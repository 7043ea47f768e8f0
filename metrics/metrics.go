// Package metrics exports pipeline counters on a private Prometheus
// registry and pushes them to a Pushgateway at the end of a batch run.
package metrics

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/theoremus-urban-solutions/entd-longdistance/converter"
	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
)

const namespace = "entd"

// Recorder holds the pipeline metrics of one process.
type Recorder struct {
	registry *prometheus.Registry

	rowsLoaded      *prometheus.CounterVec
	droppedRows     *prometheus.CounterVec
	prunedVacations prometheus.Counter
	prunedTrips     prometheus.Counter
	warnings        *prometheus.CounterVec
	outputRows      *prometheus.GaugeVec
	stageDuration   *prometheus.HistogramVec
}

// NewRecorder creates a recorder on its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		rowsLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Rows read from each ENTD source file.",
		}, []string{"file"}),
		droppedRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_rows_total",
			Help:      "Rows dropped because a foreign key could not be resolved.",
		}, []string{"relation"}),
		prunedVacations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_vacations_total",
			Help:      "Vacations removed for unknown, missing or negative times.",
		}),
		prunedTrips: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_trips_total",
			Help:      "Trips removed together with their vacation.",
		}),
		warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Data-quality warnings by type.",
		}, []string{"type"}),
		outputRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_rows",
			Help:      "Rows written per output table.",
		}, []string{"table"}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of pipeline stages.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// StartStage returns a function that observes the stage duration when called.
func (r *Recorder) StartStage(stage string) func() {
	start := time.Now()
	return func() {
		r.stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

// RecordExtract counts the rows of every loaded source file.
func (r *Recorder) RecordExtract(extract *entd.Extract) {
	for _, s := range entd.Schemas {
		r.rowsLoaded.WithLabelValues(s.Name).Add(float64(extract.Table(s.Name).Len()))
	}
}

// RecordCleaning exports the diagnostics and output sizes of a cleaning run.
func (r *Recorder) RecordCleaning(result *converter.Result) {
	d := result.Diagnostics
	r.droppedRows.WithLabelValues("person->household").Add(float64(d.PersonsWithoutHousehold))
	r.droppedRows.WithLabelValues("trip->person").Add(float64(d.TripsWithoutPerson))
	r.prunedVacations.Add(float64(d.PrunedVacations))
	r.prunedTrips.Add(float64(d.PrunedTrips))
	for warningType, n := range d.Warnings {
		r.warnings.WithLabelValues(warningType).Add(float64(n))
	}
	r.SetOutputRows("households", len(result.Households))
	r.SetOutputRows("persons", len(result.Persons))
	r.SetOutputRows("trips", len(result.Trips))
}

// SetOutputRows records the size of an output table.
func (r *Recorder) SetOutputRows(table string, n int) {
	r.outputRows.WithLabelValues(table).Set(float64(n))
}

// Push sends all metrics to a Pushgateway, grouped by run id.
func (r *Recorder) Push(ctx context.Context, url, job, runID string) error {
	err := push.New(url, job).
		Gatherer(r.registry).
		Grouping("run_id", runID).
		PushContext(ctx)
	return errors.Wrapf(err, "push metrics to %s", url)
}

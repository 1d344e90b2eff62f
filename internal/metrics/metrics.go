package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govtjobs_runs_total",
		Help: "Pipeline runs by mode.",
	}, []string{"mode"})

	ListingsFound = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govtjobs_listings_found_total",
		Help: "Listings extracted per source.",
	}, []string{"source"})

	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govtjobs_source_failures_total",
		Help: "Source fetch or extraction failures.",
	}, []string{"source"})

	RecordsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govtjobs_records_saved_total",
		Help: "Records inserted per partition.",
	}, []string{"partition"})

	DuplicatesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govtjobs_duplicates_skipped_total",
		Help: "Listings skipped because an equal record exists.",
	}, []string{"partition"})

	PersistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "govtjobs_persist_failures_total",
		Help: "Listings dropped on store errors.",
	}, []string{"partition"})

	DeadlinesResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "govtjobs_deadlines_resolved_total",
		Help: "Records persisted with a recovered deadline.",
	})

	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "govtjobs_run_duration_seconds",
		Help:    "Wall time of pipeline runs.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"mode"})
)

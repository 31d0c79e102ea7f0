package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CapturesIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitoring_captures_ingested_total",
		Help: "Raw captures accepted for ingestion, by source.",
	}, []string{"source"})

	AnalysisFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "monitoring_analysis_failures_total",
		Help: "Vision analysis attempts that left a capture in the failed state.",
	})

	RecompileRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitoring_recompile_runs_total",
		Help: "Session recompile runs, by outcome.",
	}, []string{"outcome"})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SourcesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colorize_sources_processed_total",
		Help: "Total number of video sources processed, by table and status",
	}, []string{"table", "status"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "colorize_stage_duration_seconds",
		Help:    "Duration of each per-source pipeline stage",
		Buckets: []float64{0.1, 1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})

	FramesKeptTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colorize_frames_kept_total",
		Help: "Total number of frames kept by the sampler",
	}, []string{"table"})

	RowsAppendedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "colorize_rows_appended_total",
		Help: "Total number of pixel rows appended to dataset tables",
	}, []string{"table"})

	DecodeErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colorize_decode_errors_total",
		Help: "Total number of sources cut short by a frame decode failure",
	})

	QuotesEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "colorize_quotes_emitted_total",
		Help: "Total number of quote records extracted",
	})
)

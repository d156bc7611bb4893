package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type VideoMergerMetrics struct {
	MergeRequestCount      prometheus.Counter
	MergeJobsInFlight      prometheus.Gauge
	MergeJobDurationSec    *prometheus.SummaryVec
	HTTPRequestDurationSec *prometheus.SummaryVec
}

func NewMetrics() *VideoMergerMetrics {
	m := &VideoMergerMetrics{
		// /api/merge request metrics
		MergeRequestCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "merge_request_count",
			Help: "The total number of merge jobs submitted to /api/merge",
		}),
		MergeJobsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "merge_jobs_in_flight",
			Help: "The number of merge jobs currently running",
		}),
		MergeJobDurationSec: promauto.NewSummaryVec(prometheus.SummaryOpts{
			Name: "merge_job_duration_seconds",
			Help: "The time merge jobs take from submission to a terminal state, broken up by success",
		}, []string{"success"}),

		// HTTP surface metrics
		HTTPRequestDurationSec: promauto.NewSummaryVec(prometheus.SummaryOpts{
			Name: "http_request_duration_seconds",
			Help: "The latency of API requests in seconds broken up by method and status code",
		}, []string{"method", "status_code"}),
	}

	return m
}

var Metrics = NewMetrics()

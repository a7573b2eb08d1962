// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EligibilityEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_evaluations_total",
			Help: "Eligibility evaluations by outcome",
		},
		[]string{"outcome"},
	)

	EligibilityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eligibility_score",
			Help:    "Distribution of computed eligibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	CatalogLoansSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_loans_skipped_total",
			Help: "Loan products excluded from evaluation because they failed validation",
		},
	)

	RecommendationsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_saved_total",
			Help: "Recommendation rows written or skipped as already present",
		},
		[]string{"result"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Domain events published by type and status",
		},
		[]string{"event_type", "status"},
	)
)

// RecordEligibility records one engine evaluation.
func RecordEligibility(eligible bool, score, skipped int) {
	outcome := "ineligible"
	if eligible {
		outcome = "eligible"
	}
	EligibilityEvaluations.WithLabelValues(outcome).Inc()
	EligibilityScore.Observe(float64(score))
	CatalogLoansSkipped.Add(float64(skipped))
}

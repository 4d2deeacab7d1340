package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Booking submissions by item type and terminal saga state",
		},
		[]string{"item_type", "outcome"},
	)

	bookingCompensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_compensations_total",
			Help: "Inventory compensations executed after a failed commit",
		},
		[]string{"step"},
	)

	submissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_submission_duration_seconds",
			Help:    "End-to-end booking saga duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"item_type"},
	)
)

// ObserveSubmission counts one finished saga and its duration
func ObserveSubmission(itemType, outcome string, elapsed time.Duration) {
	bookingSubmissions.WithLabelValues(itemType, outcome).Inc()
	submissionDuration.WithLabelValues(itemType).Observe(elapsed.Seconds())
}

// ObserveCompensation counts one executed compensation step
func ObserveCompensation(step string) {
	bookingCompensations.WithLabelValues(step).Inc()
}

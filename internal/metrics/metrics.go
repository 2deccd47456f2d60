package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobmarket_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	JobsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_jobs_created_total",
			Help: "Total number of jobs posted",
		},
		[]string{"category"},
	)

	ClaimAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_claim_attempts_total",
			Help: "Total number of job claim attempts by outcome",
		},
		[]string{"outcome"},
	)

	JobsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobmarket_jobs_completed_total",
			Help: "Total number of jobs marked completed",
		},
	)

	WalletTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_wallet_transactions_total",
			Help: "Total number of wallet ledger entries",
		},
		[]string{"kind"},
	)

	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobmarket_settlements_total",
			Help: "Total number of top-up settlement confirmations by outcome",
		},
		[]string{"outcome"},
	)

	NotificationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobmarket_notifications_created_total",
			Help: "Total number of notifications created",
		},
	)

	PushQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobmarket_push_queue_length",
			Help: "Current length of the push notification queue",
		},
	)

	ReviewsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobmarket_reviews_submitted_total",
			Help: "Total number of reviews submitted",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordJobCreated(category string) {
	JobsCreatedTotal.WithLabelValues(category).Inc()
}

func RecordClaimAttempt(outcome string) {
	ClaimAttemptsTotal.WithLabelValues(outcome).Inc()
}

func RecordJobCompleted() {
	JobsCompletedTotal.Inc()
}

func RecordWalletTransaction(kind string) {
	WalletTransactionsTotal.WithLabelValues(kind).Inc()
}

func RecordSettlement(outcome string) {
	SettlementsTotal.WithLabelValues(outcome).Inc()
}

func RecordNotificationCreated() {
	NotificationsCreatedTotal.Inc()
}

func RecordReviewSubmitted() {
	ReviewsSubmittedTotal.Inc()
}

func SetPushQueueLength(length float64) {
	PushQueueLength.Set(length)
}

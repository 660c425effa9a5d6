package guide

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	staleReviewsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "streetbites",
		Subsystem: "guide",
		Name:      "stale_review_results_discarded_total",
		Help:      "Review fetches that resolved for a restaurant no longer open.",
	})

	submissionsNotOK = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "streetbites",
		Subsystem: "guide",
		Name:      "review_submissions_not_ok_total",
		Help:      "Review submissions that failed or answered a status other than ok.",
	})

	queryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "streetbites",
		Subsystem: "guide",
		Name:      "query_failures_total",
		Help:      "Chat queries that resolved with an error.",
	})
)

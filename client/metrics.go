package client

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	endpointSeed       = "seed"
	endpointChat       = "chat"
	endpointRestaurant = "restaurant"
	endpointReviews    = "reviews"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "streetbites_client",
			Name:      "requests_total",
			Help:      "Backend requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "streetbites_client",
			Name:      "request_duration_seconds",
			Help:      "Backend round-trip latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// instrumentedDoer records one requestsTotal sample per round trip.
type instrumentedDoer struct {
	http     *http.Client
	endpoint string
}

func (c *Client) instrumented(endpoint string) *instrumentedDoer {
	return &instrumentedDoer{http: c.http, endpoint: endpoint}
}

func (d *instrumentedDoer) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := d.http.Do(req)
	requestDuration.WithLabelValues(d.endpoint).Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		requestsTotal.WithLabelValues(d.endpoint, "network_error").Inc()
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		requestsTotal.WithLabelValues(d.endpoint, "http_error").Inc()
	default:
		requestsTotal.WithLabelValues(d.endpoint, "ok").Inc()
	}
	return resp, err
}

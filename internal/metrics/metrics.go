package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerateRequests counts incoming /generate calls, labeled by status.
	GenerateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "email_writer_generate_requests_total",
		Help: "The total number of received reply generation requests",
	}, []string{"status"}) // status: received, success, invalid_body, invalid_encoding, failed

	// GenerateDuration measures the time taken to produce a reply (end-to-end).
	GenerateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "email_writer_generate_duration_seconds",
		Help:    "Time taken to generate an email reply",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"}) // result: success, error

	// ProviderRequests counts outbound LLM calls
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "email_writer_provider_requests_total",
		Help: "The total number of LLM provider calls",
	}, []string{"dialect", "result"}) // result: success, transport, parse

	// ProviderDuration measures a single provider round trip
	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "email_writer_provider_duration_seconds",
		Help:    "Time taken by one LLM provider round trip",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"dialect"})
)

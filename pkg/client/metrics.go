package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for catalog client operations.
var (
	spotifyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spotify_requests_total",
		Help: "Total catalog requests by mode and status",
	}, []string{"mode", "status"})

	spotifyRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spotify_request_duration_seconds",
		Help:    "Execute duration in seconds by mode, continuation pages included",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"mode"})

	spotifyErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spotify_errors_total",
		Help: "Total catalog errors by kind",
	}, []string{"kind"})

	spotifyPagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spotify_pages_fetched_total",
		Help: "Total album continuation pages fetched",
	})
)

// Package metrics provides the Prometheus registry and scrape handler for the
// Spotify catalog client. All metrics are defined in their respective packages
// (client, cache, ratelimit) to maintain modularity and avoid circular
// dependencies.
//
// This package provides the /metrics handler and a reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the catalog client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer matching Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler returns the HTTP handler serving all registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Rate Limit Metrics (pkg/ratelimit):
//   - spotify_rate_limit_blocks_total (Counter): Requests refused while a Retry-After window was active
//   - spotify_rate_limited_responses_total (Counter): 429 responses received
//
// Cache Metrics (pkg/cache):
//   - spotify_cache_hits_total{layer} (Counter): Cache hits by layer (memory, redis)
//   - spotify_cache_misses_total{layer} (Counter): Cache misses by layer
//   - spotify_cache_evictions_total{layer} (Counter): Entries evicted from the in-memory cache
//   - spotify_cache_entries{cache} (Gauge): Entries resident in the in-memory cache
//   - spotify_cache_errors_total{operation} (Counter): Redis store operation errors
//
// Request Metrics (pkg/client):
//   - spotify_requests_total{mode, status} (Counter): Requests by mode and HTTP status
//   - spotify_request_duration_seconds{mode} (Histogram): Execute duration by mode
//   - spotify_errors_total{kind} (Counter): Errors by kind (not_found, invalid_arguments, transport)
//   - spotify_pages_fetched_total (Counter): Album continuation pages fetched
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(spotify_cache_hits_total[5m])) /
//   (sum(rate(spotify_cache_hits_total[5m])) + sum(rate(spotify_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(spotify_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(spotify_request_duration_seconds_bucket[5m]))
//
//   # Rate limited responses
//   rate(spotify_rate_limited_responses_total[5m])

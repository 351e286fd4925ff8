package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit tracking.
var (
	spotifyRateLimitBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spotify_rate_limit_blocks_total",
		Help: "Total number of requests refused while a Retry-After window was active",
	})

	spotifyRateLimitedResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spotify_rate_limited_responses_total",
		Help: "Total number of 429 responses received from Spotify",
	})
)

// Tracker monitors Spotify rate limit responses and gates requests.
// It is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	state  State
	logger zerolog.Logger
}

// NewTracker creates a new rate limit tracker.
func NewTracker(logger zerolog.Logger) *Tracker {
	return &Tracker{
		logger: logger,
	}
}

// State returns a snapshot of the current rate limit state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// UpdateFromResponse records the status of a response. A 429 blocks requests
// for the duration given by its Retry-After header.
func (t *Tracker) UpdateFromResponse(status int, headers http.Header) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.LastStatus = status
	t.state.LastUpdate = now

	if status != http.StatusTooManyRequests {
		return
	}

	retryAfter := parseRetryAfter(headers.Get("Retry-After"), now)
	blockedUntil := now.Add(retryAfter)
	if blockedUntil.After(t.state.BlockedUntil) {
		t.state.BlockedUntil = blockedUntil
	}

	spotifyRateLimitedResponsesTotal.Inc()

	t.logger.Warn().
		Dur("retry_after", retryAfter).
		Time("blocked_until", t.state.BlockedUntil).
		Msg("Spotify rate limit hit - requests will be blocked")
}

// Allow reports whether a request may be sent now.
func (t *Tracker) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.IsBlocked() {
		spotifyRateLimitBlocksTotal.Inc()
		t.logger.Debug().
			Dur("remaining", t.state.TimeUntilUnblock()).
			Msg("Request blocked by rate limiter")
		return false
	}

	return true
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultRetryAfter
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return DefaultRetryAfter
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}

	return DefaultRetryAfter
}

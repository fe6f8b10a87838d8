package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Response headers carrying the Sentry quota state.
const (
	HeaderRemaining = "x-sentry-rate-limit-remaining"
	HeaderLimit     = "x-sentry-rate-limit-limit"
	HeaderReset     = "x-sentry-rate-limit-reset"
)

// Prometheus metrics for quota tracking.
var (
	quotaRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "issuegaze_quota_remaining",
		Help: "Calls remaining in the current Sentry rate limit window",
	})

	quotaWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issuegaze_quota_waits_total",
		Help: "Total number of requests delayed because the quota was exhausted",
	})

	quotaWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "issuegaze_quota_wait_seconds",
		Help:    "Duration of quota-exhaustion waits before requests",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})
)

// Tracker holds the quota state for one client instance and updates it
// from response headers. It has a single owner; the client reads it before
// every request and writes it after every response, never concurrently.
type Tracker struct {
	state  State
	logger zerolog.Logger
}

// NewTracker creates a tracker with the optimistic initial state.
func NewTracker(logger zerolog.Logger) *Tracker {
	return &Tracker{
		state:  NewState(),
		logger: logger,
	}
}

// State returns a copy of the current quota state.
func (t *Tracker) State() State {
	return t.state
}

// ShouldWait returns the delay required before the next request at instant now.
// Callers observing a positive duration should record it via ObserveWait once
// they actually wait.
func (t *Tracker) ShouldWait(now time.Time) time.Duration {
	return t.state.ShouldWait(now)
}

// ObserveWait records that a request was delayed by d for quota reasons.
func (t *Tracker) ObserveWait(d time.Duration) {
	quotaWaitsTotal.Inc()
	quotaWaitSeconds.Observe(d.Seconds())
	t.logger.Warn().
		Dur("wait", d).
		Int("remaining", t.state.Remaining).
		Time("reset_at", t.state.ResetAt).
		Msg("Quota exhausted, delaying request")
}

// UpdateFromHeaders overwrites quota fields from the response headers.
// Each field is replaced only when its header is present and parseable;
// absent or malformed headers leave the prior value untouched. Missing
// quota data is a normal condition, never an error.
func (t *Tracker) UpdateFromHeaders(headers http.Header) {
	updated := false

	if v, ok := intHeader(headers, HeaderRemaining); ok {
		t.state.Remaining = v
		quotaRemaining.Set(float64(v))
		updated = true
	}
	if v, ok := intHeader(headers, HeaderLimit); ok {
		t.state.Limit = v
		updated = true
	}
	if v, ok := intHeader(headers, HeaderReset); ok {
		t.state.ResetAt = time.Unix(int64(v), 0)
		updated = true
	}

	if updated {
		t.logger.Debug().
			Int("remaining", t.state.Remaining).
			Int("limit", t.state.Limit).
			Time("reset_at", t.state.ResetAt).
			Msg("Quota state updated from headers")
	}
}

// intHeader parses a numeric header value. The second return is false when
// the header is absent or not an integer.
func intHeader(headers http.Header, name string) (int, bool) {
	raw := headers.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

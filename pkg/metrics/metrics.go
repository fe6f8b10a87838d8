// Package metrics provides the central Prometheus registry reference for the
// issuegaze client. Metrics are defined in the packages that own them
// (client, ratelimit) via promauto to keep things modular; this package
// documents the names and offers a debug dump for CLI runs.
//
// Rate limit metrics (pkg/ratelimit):
//   - issuegaze_quota_remaining (Gauge): calls left in the current window
//   - issuegaze_quota_waits_total (Counter): requests delayed on exhausted quota
//   - issuegaze_quota_wait_seconds (Histogram): duration of those delays
//
// Request metrics (pkg/client):
//   - issuegaze_requests_total{path, status} (Counter): requests by outcome
//   - issuegaze_request_duration_seconds{path} (Histogram): request latency
//   - issuegaze_rate_limit_retries_total (Counter): 429-triggered re-issues
//   - issuegaze_transport_errors_total (Counter): transport-level failures
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Registry is the default Prometheus registerer used by the client.
// All metrics are automatically registered via promauto in their packages.
var Registry = prometheus.DefaultRegisterer

// Dump logs every gathered metric sample at debug level. The CLI calls it
// at the end of a run when --show-metrics is set; a long-running embedder
// would expose the registry over HTTP instead.
func Dump(logger zerolog.Logger) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			event := logger.Debug().Str("metric", family.GetName())

			for _, label := range metric.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}

			switch {
			case metric.GetCounter() != nil:
				event = event.Float64("value", metric.GetCounter().GetValue())
			case metric.GetGauge() != nil:
				event = event.Float64("value", metric.GetGauge().GetValue())
			case metric.GetHistogram() != nil:
				h := metric.GetHistogram()
				event = event.
					Uint64("count", h.GetSampleCount()).
					Float64("sum", h.GetSampleSum())
			}

			event.Msg("metric")
		}
	}

	return nil
}

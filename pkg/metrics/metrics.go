// Package metrics provides the Prometheus registry and HTTP handler for the
// wallhaven client. All metrics are defined in their respective packages
// (client, pagination, presets) and registered via promauto.
//
// This package provides the exposition handler and a reference of all
// available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the wallhaven client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Names lists every metric exported by the module.
var Names = []string{
	"wallhaven_requests_total",
	"wallhaven_request_duration_seconds",
	"wallhaven_errors_total",
	"wallhaven_retries_total",
	"wallhaven_retry_backoff_seconds",
	"wallhaven_retry_exhausted_total",
	"wallhaven_pages_fetched_total",
	"wallhaven_pagination_aborts_total",
	"wallhaven_preset_operations_total",
	"wallhaven_preset_misses_total",
	"wallhaven_preset_errors_total",
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - wallhaven_requests_total{endpoint, status} (Counter): Requests by route and HTTP status
//   - wallhaven_request_duration_seconds{endpoint} (Histogram): Request duration by route, retries included
//   - wallhaven_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - wallhaven_retries_total{error_class} (Counter): Retry attempts by error class
//   - wallhaven_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - wallhaven_retry_exhausted_total{error_class} (Counter): Requests that exhausted max attempts
//
// Pagination Metrics (pkg/pagination):
//   - wallhaven_pages_fetched_total (Counter): Listing pages fetched
//   - wallhaven_pagination_aborts_total (Counter): Paginated fetches aborted by a page error
//
// Preset Metrics (pkg/presets):
//   - wallhaven_preset_operations_total{operation} (Counter): Store operations (save, get, list, delete)
//   - wallhaven_preset_misses_total (Counter): Lookups of unknown presets
//   - wallhaven_preset_errors_total{operation} (Counter): Store errors by operation
//
// Example Prometheus Queries:
//
//   # Rate limited requests
//   sum(rate(wallhaven_errors_total{class="rate_limit"}[5m]))
//
//   # P95 search latency
//   histogram_quantile(0.95, rate(wallhaven_request_duration_seconds_bucket{endpoint="search"}[5m]))
//
//   # Pages per paginated fetch
//   rate(wallhaven_pages_fetched_total[5m])

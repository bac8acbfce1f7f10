// Package metrics provides the centralized Prometheus metrics registry for
// the lesgo client. All metrics are defined in their respective packages
// (client, cache) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - l2l_requests_total{resource, status} (Counter): Total requests by resource and HTTP status
//   - l2l_request_duration_seconds{resource} (Histogram): Request duration by resource
//   - l2l_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - l2l_retries_total{error_class} (Counter): Retry attempts by error class
//   - l2l_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - l2l_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Cache Metrics (pkg/cache):
//   - l2l_cache_hits_total{layer="redis"} (Counter): Response cache hits by layer
//   - l2l_cache_misses_total (Counter): Response cache misses
//   - l2l_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(l2l_cache_hits_total[5m])) /
//   (sum(rate(l2l_cache_hits_total[5m])) + sum(rate(l2l_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(l2l_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(l2l_request_duration_seconds_bucket[5m]))

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the Prometheus collectors for the HTTP endpoint.
type Metrics struct {
	RequestsTotal *prometheus.CounterVec
	Duration      prometheus.Histogram
	Confidence    prometheus.Histogram
	FieldsFilled  *prometheus.CounterVec
}

// NewMetrics registers the collectors on first use and returns the shared
// set on every call after that.
//
// Metrics:
//   - deedparse_extract_requests_total{status}
//   - deedparse_extract_duration_seconds
//   - deedparse_extract_confidence
//   - deedparse_extract_fields_filled_total{field}
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "deedparse_extract_requests_total",
					Help: "Total number of extraction requests by outcome",
				},
				[]string{"status"}, // "ok", "invalid", "empty"
			),
			Duration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "deedparse_extract_duration_seconds",
					Help:    "Duration of a single extraction in seconds",
					Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
				},
			),
			Confidence: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "deedparse_extract_confidence",
					Help:    "Aggregate confidence of extraction results",
					Buckets: prometheus.LinearBuckets(0, 0.1, 11),
				},
			),
			FieldsFilled: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "deedparse_extract_fields_filled_total",
					Help: "Total number of non-empty fields returned",
				},
				[]string{"field"},
			),
		}
	})
	return globalMetrics
}

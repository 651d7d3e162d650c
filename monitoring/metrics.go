package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	Estimates        *prometheus.CounterVec
	CacheHits        prometheus.Counter
	EstimateDuration prometheus.Histogram
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests independent of the global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Estimates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homeprice_estimates_total",
				Help: "Total number of price estimates served",
			},
			[]string{"location_matched"},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "homeprice_estimate_cache_hits_total",
				Help: "Estimates answered from the quote cache",
			},
		),
		EstimateDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "homeprice_estimate_duration_seconds",
				Help:    "Time spent computing an estimate",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homeprice_http_requests_total",
				Help: "HTTP requests by method, path and status code",
			},
			[]string{"method", "path", "code"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "homeprice_http_request_duration_seconds",
				Help: "HTTP request latency",
			},
			[]string{"method", "path"},
		),
	}
}

func (m *Metrics) ObserveEstimate(matched bool, d time.Duration) {
	m.Estimates.WithLabelValues(strconv.FormatBool(matched)).Inc()
	m.EstimateDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveCacheHit() {
	m.CacheHits.Inc()
}

func (m *Metrics) ObserveHTTP(method, path string, code int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

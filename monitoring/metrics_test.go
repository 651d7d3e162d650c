package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveEstimate(true, time.Millisecond)
	m.ObserveEstimate(true, time.Millisecond)
	m.ObserveEstimate(false, time.Millisecond)
	m.ObserveCacheHit()
	m.ObserveHTTP("POST", "/api/estimate", 200, 2*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Estimates.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Estimates.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/estimate", "200")))
}

func TestNewMetricsOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}

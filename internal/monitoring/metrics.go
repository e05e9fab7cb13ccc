package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the client-side Prometheus collectors
type Metrics struct {
	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec

	// Cookie metrics
	CookiesReceived prometheus.Counter

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for quick reporting
type Snapshot struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalBytes      int64
	CookiesReceived int64
	TotalDuration   float64
}

// NewMetrics registers the collectors on reg. A nil reg uses a private
// registry so repeated construction never panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requests_client_requests_total",
				Help: "Total number of HTTP requests sent",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "requests_client_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "requests_client_response_size_bytes",
				Help:    "HTTP response body size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method"},
		),
		RequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requests_client_request_errors_total",
				Help: "Total number of failed HTTP requests",
			},
			[]string{"method"},
		),
		CookiesReceived: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "requests_client_cookies_received_total",
				Help: "Total number of Set-Cookie values folded into jars",
			},
		),
	}
}

// RecordRequest records a completed exchange
func (m *Metrics) RecordRequest(method string, status int, duration time.Duration, respSize int) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalBytes += int64(respSize)
	m.snapshot.TotalDuration += duration.Seconds()
	m.mu.Unlock()
}

// RecordError records a request that produced no response
func (m *Metrics) RecordError(method string) {
	if m == nil {
		return
	}
	m.RequestErrors.WithLabelValues(method).Inc()

	m.mu.Lock()
	m.snapshot.TotalErrors++
	m.mu.Unlock()
}

// RecordCookies records n received Set-Cookie values
func (m *Metrics) RecordCookies(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CookiesReceived.Add(float64(n))

	m.mu.Lock()
	m.snapshot.CookiesReceived += int64(n)
	m.mu.Unlock()
}

// Snapshot returns the running totals
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// AverageDuration returns the mean request duration, or zero before any request
func (s Snapshot) AverageDuration() time.Duration {
	if s.TotalRequests == 0 {
		return 0
	}
	return time.Duration(s.TotalDuration / float64(s.TotalRequests) * float64(time.Second))
}

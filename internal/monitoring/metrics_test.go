package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordRequest("GET", 200, 100*time.Millisecond, 512)
	m.RecordRequest("GET", 200, 300*time.Millisecond, 256)
	m.RecordRequest("POST", 404, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(768), snap.TotalBytes)
	assert.InDelta(t, float64(400*time.Millisecond/3), float64(snap.AverageDuration()), float64(time.Millisecond))
}

func TestRecordErrorAndCookies(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordError("GET")
	m.RecordCookies(2)
	m.RecordCookies(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestErrors.WithLabelValues("GET")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CookiesReceived))
	assert.Equal(t, int64(1), m.Snapshot().TotalErrors)
	assert.Equal(t, int64(2), m.Snapshot().CookiesReceived)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordRequest("GET", 200, time.Second, 1)
		m.RecordError("GET")
		m.RecordCookies(1)
	})
	assert.Equal(t, Snapshot{}, m.Snapshot())
	assert.Equal(t, time.Duration(0), Snapshot{}.AverageDuration())
}

func TestNilRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(nil)
		NewMetrics(nil)
	})
}

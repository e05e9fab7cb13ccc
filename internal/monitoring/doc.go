/*
Package monitoring provides client-side request metrics.

# Overview

Metrics wraps a set of Prometheus collectors that a session updates after
every exchange: request counts by method and status, latency and body size
histograms, transport failures, and the number of cookies received.

All Record methods accept a nil *Metrics, so callers never need to check
whether metrics are enabled.

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	sess := session.New(session.WithMetrics(metrics))

	// Running totals without scraping
	snap := metrics.Snapshot()
	fmt.Println(snap.TotalRequests, snap.AverageDuration())
*/
package monitoring

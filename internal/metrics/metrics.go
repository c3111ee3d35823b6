// Package metrics holds the Prometheus collectors for the travel log.
package metrics

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "travellog"

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	// Geocoding metrics. outcome is one of found, not_found, upstream_error.
	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "geocode",
		Name:      "lookups_total",
		Help:      "Total geocoding lookups by outcome",
	}, []string{"outcome"})

	GeocodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "geocode",
		Name:      "lookup_duration_seconds",
		Help:      "Duration of outbound geocoding requests",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
)

// Geocode lookup outcomes.
const (
	OutcomeFound         = "found"
	OutcomeNotFound      = "not_found"
	OutcomeUpstreamError = "upstream_error"
)

// RegisterPool exposes pgxpool statistics as gauges read at scrape time.
// Call it once per process.
func RegisterPool(pool *pgxpool.Pool) {
	gauge := func(name, help string, read func(*pgxpool.Stat) int32) {
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(read(pool.Stat())) })
	}
	gauge("pool_conns_open", "Total connections open in the database pool", (*pgxpool.Stat).TotalConns)
	gauge("pool_conns_acquired", "Connections currently acquired from the database pool", (*pgxpool.Stat).AcquiredConns)
	gauge("pool_conns_idle", "Idle connections in the database pool", (*pgxpool.Stat).IdleConns)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

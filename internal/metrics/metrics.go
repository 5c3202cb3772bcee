package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	SweepsTotal      *prometheus.CounterVec
	SweepDuration    prometheus.Histogram
	AlertsDelivered  *prometheus.CounterVec
	SinkFailures     *prometheus.CounterVec
	LedgerSize       prometheus.Gauge
	HTTPRequests     *prometheus.CounterVec
	HTTPRequestTimes *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		SweepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_low_stock_sweeps_total",
				Help: "Low stock sweeps by outcome",
			},
			[]string{"outcome"},
		),
		SweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "inventory_low_stock_sweep_duration_seconds",
				Help:    "Time spent in one low stock sweep including sink delivery",
				Buckets: prometheus.DefBuckets,
			},
		),
		AlertsDelivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_low_stock_alerts_total",
				Help: "Low stock alerts handed to a sink",
			},
			[]string{"sink"},
		),
		SinkFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_alert_sink_failures_total",
				Help: "Alert deliveries that failed",
			},
			[]string{"sink"},
		),
		LedgerSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "inventory_alert_ledger_size",
				Help: "Products with an outstanding low stock alert",
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestTimes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		m.SweepsTotal,
		m.SweepDuration,
		m.AlertsDelivered,
		m.SinkFailures,
		m.LedgerSize,
		m.HTTPRequests,
		m.HTTPRequestTimes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Sweep outcome label values
const (
	SweepOK     = "ok"
	SweepFailed = "failed"
)

func (m *Metrics) ObserveSweep(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SweepsTotal.WithLabelValues(outcome).Inc()
	m.SweepDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) AlertDelivered(sink string) {
	if m == nil {
		return
	}
	m.AlertsDelivered.WithLabelValues(sink).Inc()
}

func (m *Metrics) SinkFailed(sink string) {
	if m == nil {
		return
	}
	m.SinkFailures.WithLabelValues(sink).Inc()
}

func (m *Metrics) SetLedgerSize(size int) {
	if m == nil {
		return
	}
	m.LedgerSize.Set(float64(size))
}

// GinMiddleware records request counts and latency per route template
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestTimes.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

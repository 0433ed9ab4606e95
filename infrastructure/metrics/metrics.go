package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "social_media_dashboard"

// Lookup outcomes for platform requests
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
)

// Collector owns the dashboard metrics and their registry
type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	platformLookups     *prometheus.CounterVec
	dashboardPlatforms  prometheus.Gauge
	dashboardPeriods    prometheus.Gauge
}

// NewCollector registers the dashboard metrics plus the Go and process collectors
func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	c.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	c.platformLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "platform_lookups_total",
			Help:      "Platform lookups by outcome",
		},
		[]string{"outcome"},
	)
	c.dashboardPlatforms = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "platforms",
		Help:      "Number of platforms in the loaded dashboard",
	})
	c.dashboardPeriods = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "periods",
		Help:      "Number of engagement periods in the loaded dashboard",
	})

	c.registry.MustRegister(
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.platformLookups,
		c.dashboardPlatforms,
		c.dashboardPeriods,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Middleware records request count and duration per route template
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		endpoint := ctx.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		method := ctx.Request.Method
		c.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in Prometheus exposition format
func (c *Collector) Handler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return func(ctx *gin.Context) {
		handler.ServeHTTP(ctx.Writer, ctx.Request)
	}
}

func (c *Collector) IncLookup(outcome string) {
	if c == nil {
		return
	}
	c.platformLookups.WithLabelValues(outcome).Inc()
}

// SetDashboardShape publishes the size of the loaded dashboard
func (c *Collector) SetDashboardShape(platforms, periods int) {
	if c == nil {
		return
	}
	c.dashboardPlatforms.Set(float64(platforms))
	c.dashboardPeriods.Set(float64(periods))
}

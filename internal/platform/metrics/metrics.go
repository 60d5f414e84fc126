package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so tests and multiple servers in one
// process do not collide on the default registerer.
type Collector struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	rateLimited prometheus.Counter
	statements  prometheus.Counter
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ems_http_requests_total",
			Help: "HTTP requests served, by method, route pattern and status code",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ems_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "ems_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
		statements: factory.NewCounter(prometheus.CounterOpts{
			Name: "ems_pay_statements_generated_total",
			Help: "Pay statements derived since the process started",
		}),
	}
}

func (c *Collector) Record(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(duration.Seconds())
	if status == http.StatusTooManyRequests {
		c.rateLimited.Inc()
	}
}

// StatementsGenerated counts derived pay statements.
func (c *Collector) StatementsGenerated(count int) {
	if c == nil || count <= 0 {
		return
	}
	c.statements.Add(float64(count))
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

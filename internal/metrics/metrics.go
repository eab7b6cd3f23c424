// Package metrics exposes Prometheus instrumentation for the HTTP server and
// the order engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/delivery/internal/domain/model"
)

const namespace = "delivery"

// Metrics owns a registry and the collectors registered in it.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	inFlight        prometheus.Gauge

	ordersCreated    prometheus.Counter
	orderTransitions *prometheus.CounterVec
	itemMutations    *prometheus.CounterVec
}

// New builds Metrics with Go runtime and process collectors attached.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total orders created.",
		}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Order status changes by target status.",
		}, []string{"status"}),
		itemMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "item_mutations_total",
			Help:      "Item additions and removals.",
		}, []string{"op"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.inFlight,
		m.ordersCreated,
		m.orderTransitions,
		m.itemMutations,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition page for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// RequestStarted increments the in-flight gauge and returns a func recording the result.
func (m *Metrics) RequestStarted() func(method, route string, status int) {
	start := time.Now()
	m.inFlight.Inc()
	return func(method, route string, status int) {
		m.inFlight.Dec()
		code := strconv.Itoa(status)
		m.requestDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
		m.requestTotal.WithLabelValues(method, route, code).Inc()
	}
}

func (m *Metrics) OrderCreated() {
	m.ordersCreated.Inc()
}

func (m *Metrics) OrderTransitioned(to model.OrderStatus) {
	m.orderTransitions.WithLabelValues(string(to)).Inc()
}

func (m *Metrics) ItemChanged(op string) {
	m.itemMutations.WithLabelValues(op).Inc()
}

// Package metrics holds the Prometheus collectors for the market services.
//
// Every method is safe on a nil *Metrics so callers that run without
// instrumentation (tests, the CLI) need no special casing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "market"

type Metrics struct {
	reg prometheus.Gatherer

	requestDuration *prometheus.HistogramVec
	checkouts       *prometheus.CounterVec
	checkoutAmount  prometheus.Counter
	transitions     *prometheus.CounterVec
	reviews         *prometheus.CounterVec
	cartOps         *prometheus.CounterVec
	events          *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by result.",
		}, []string{"result"}),
		checkoutAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_amount_total",
			Help:      "Sum of total_amount over successful checkouts.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order status transitions by target status, actor role and result.",
		}, []string{"to", "role", "result"}),
		reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_total",
			Help:      "Review submissions by result.",
		}, []string{"result"}),
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation and result.",
		}, []string{"op", "result"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Lifecycle events published or consumed.",
		}, []string{"direction", "type", "result"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration, m.checkouts, m.checkoutAmount, m.transitions, m.reviews, m.cartOps, m.events,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Middleware records request latency by chi route pattern, not raw path, to
// keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Checkout(result string, amount float64) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(result).Inc()
	if result == "ok" {
		m.checkoutAmount.Add(amount)
	}
}

func (m *Metrics) Transition(to, role, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(to, role, result).Inc()
}

func (m *Metrics) Review(result string) {
	if m == nil {
		return
	}
	m.reviews.WithLabelValues(result).Inc()
}

func (m *Metrics) CartOp(op, result string) {
	if m == nil {
		return
	}
	m.cartOps.WithLabelValues(op, result).Inc()
}

func (m *Metrics) Event(direction, eventType, result string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(direction, eventType, result).Inc()
}

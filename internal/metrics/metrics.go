// Package metrics exposes Prometheus instrumentation for the gallery.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"artvista/internal/events"
)

const namespace = "artvista"

// Recorder owns the gallery collectors. A nil *Recorder discards everything.
type Recorder struct {
	mutations        *prometheus.CounterVec
	authAttempts     *prometheus.CounterVec
	checkouts        *prometheus.CounterVec
	checkoutDuration prometheus.Histogram
	workspaces       prometheus.Gauge
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// New registers the gallery collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Committed store mutations by store and kind",
		}, []string{"store", "kind"}),

		authAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Authentication attempts by method and outcome",
		}, []string{"method", "outcome"}),

		checkouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkouts by outcome",
		}, []string{"outcome"}),

		checkoutDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_duration_seconds",
			Help:      "Time spent completing a checkout",
			Buckets:   []float64{0.1, 0.5, 1, 2, 3, 5, 10},
		}),

		workspaces: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workspaces_open",
			Help:      "Workspaces currently held in memory",
		}),

		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Listener counts every store event it receives.
func (r *Recorder) Listener() events.Listener {
	return func(e events.Event) {
		if r == nil {
			return
		}
		r.mutations.WithLabelValues(e.Store, e.Kind).Inc()
	}
}

// AuthAttempt records one authentication attempt.
func (r *Recorder) AuthAttempt(method string, err error) {
	if r == nil {
		return
	}
	r.authAttempts.WithLabelValues(method, outcome(err)).Inc()
}

// Checkout records a finished checkout.
func (r *Recorder) Checkout(d time.Duration, err error) {
	if r == nil {
		return
	}
	r.checkouts.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		r.checkoutDuration.Observe(d.Seconds())
	}
}

// WorkspaceOpened increments the open workspace gauge.
func (r *Recorder) WorkspaceOpened() {
	if r == nil {
		return
	}
	r.workspaces.Inc()
}

// WorkspaceClosed decrements the open workspace gauge.
func (r *Recorder) WorkspaceClosed() {
	if r == nil {
		return
	}
	r.workspaces.Dec()
}

// Middleware records request counts and latency keyed by the matched chi route.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.requests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

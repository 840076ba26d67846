package server

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"artvista/internal/handlers"
	applog "artvista/internal/log"
	"artvista/internal/metrics"
)

// newRouter mounts the probes and the event feed outside the session middleware, since
// the feed hijacks the connection, and everything else inside it.
func newRouter(sm *scs.SessionManager, h *handlers.Handler, rec *metrics.Recorder, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(rec.Middleware)

	applog.Debug(context.Background(), "registering http routes")
	r.Get("/healthz", h.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	applog.Debug(context.Background(), "route registered", "path", "/metrics")
	r.Get("/api/events", h.Events)
	applog.Debug(context.Background(), "route registered", "path", "/api/events", "websocket", true)

	r.Group(func(r chi.Router) {
		r.Use(sm.LoadAndSave)
		h.Routes(r)
	})
	applog.Debug(context.Background(), "route registered", "path", "/api", "session", true)

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return r
}

package handler

import (
	"log/slog"
	"net/http"

	"email-writer/internal/config"
	"email-writer/internal/generator"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Route paths
const (
	PathGenerate = "/api/email/generate"
	PathPing     = "/api/email/ping"
	PathLive     = "/health/live"
	PathMetrics  = "/metrics"
)

// NewRouter wires the HTTP endpoints and wraps them with CORS for the browser client.
func NewRouter(cfg *config.Config, gen generator.Generator) http.Handler {
	h := NewEmailHandler(cfg, gen)

	mux := http.NewServeMux()
	mux.HandleFunc(PathGenerate, h.Generate)
	mux.HandleFunc(PathPing, h.Ping)

	// Liveness probe (Kubernetes: startup/liveness)
	mux.HandleFunc(PathLive, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	mux.Handle(PathMetrics, promhttp.Handler())

	// Catch misconfigured clients (e.g. missing /api/email prefix)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("request to unknown path", "path", r.URL.Path, "method", r.Method)
		http.NotFound(w, r)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	return c.Handler(mux)
}

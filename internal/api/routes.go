package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartroute/internal/metrics"
)

// Routes registers every endpoint on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Plans
	mux.HandleFunc("/v1/plans", s.PlansHandler)
	mux.HandleFunc("/v1/plans/", s.PlanByIDHandler) // includes /select, /events/stream
	mux.HandleFunc("/v1/ws", s.PlanEventsWSHandler)

	// Reference data
	mux.HandleFunc("/v1/places", s.PlacesHandler)
	mux.HandleFunc("/v1/traffic-levels", s.TrafficLevelsHandler)

	// Health
	mux.HandleFunc("/healthz", s.HealthHandler)
	mux.HandleFunc("/readyz", s.ReadyHandler)

	// Docs and ops
	mux.HandleFunc("/openapi.yaml", s.OpenAPIHandler)
	mux.HandleFunc("/openapi.json", s.OpenAPIJSONHandler)
	mux.HandleFunc("/docs", s.DocsHandler)
	mux.HandleFunc("/debug/info", s.DebugJSON)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return mux
}

// Handler is the mux wrapped in rate limiting and request logging.
func (s *Server) Handler() http.Handler {
	return logMiddleware(s.Log, rateLimit(s.Config.Server.RateRPS, s.Config.Server.RateBurst, s.Routes()))
}

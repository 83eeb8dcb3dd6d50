package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// DirectionsRequests counts provider calls by profile and outcome (ok, empty, provider_error, http_error, error)
	DirectionsRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "directions_requests_total", Help: "Directions provider calls by profile and outcome."},
		[]string{"profile", "outcome"},
	)
	// DirectionsDuration tracks provider latency in seconds
	DirectionsDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "directions_request_duration_seconds", Help: "Directions provider latency in seconds.", Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}},
		[]string{"profile"},
	)
	// RouteCandidates observes how many candidates a plan produced before truncation
	RouteCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_candidates", Help: "Route candidates per plan before truncation.", Buckets: []float64{0, 1, 2, 3, 4, 6, 8}},
	)
	// RouteTrafficLevels counts returned routes by traffic level
	RouteTrafficLevels = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_traffic_level_total", Help: "Returned routes by traffic level."},
		[]string{"level"},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(DirectionsRequests)
		Registry.MustRegister(DirectionsDuration)
		Registry.MustRegister(RouteCandidates)
		Registry.MustRegister(RouteTrafficLevels)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

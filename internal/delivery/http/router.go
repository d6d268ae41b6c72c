package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/http/middleware"
	"devevents/internal/pkg/metrics"
)

// RouterConfig holds everything NewRouter wires into the mux.
type RouterConfig struct {
	Logger           *slog.Logger
	EventController  *controllers.EventController
	HealthController *controllers.HealthController
	Metrics          *metrics.Metrics
	// Gatherer serves /metrics; nil disables the endpoint.
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes
// and wraps it in recovery, metrics, logging and CORS, outermost first.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// API Routes
	ec := cfg.EventController
	mux.HandleFunc("GET /api/dev-events", ec.ListEvents)
	mux.HandleFunc("POST /api/dev-events", ec.CreateEvent)
	mux.HandleFunc("GET /api/dev-events/{id}", ec.GetEventByID)
	mux.HandleFunc("PUT /api/dev-events/{id}", ec.UpdateEvent)
	mux.HandleFunc("DELETE /api/dev-events/{id}", ec.DeleteEvent)
	mux.HandleFunc("POST /api/dev-events/{id}/speakers", ec.AddSpeaker)
	mux.HandleFunc("POST /api/dev-events/{id}/speakers/import/sessionize/{sessionizeID}", ec.ImportSessionize)

	// Ops
	if cfg.HealthController != nil {
		mux.HandleFunc("GET /health", cfg.HealthController.Health)
	}
	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	if cfg.Metrics != nil {
		handler = middleware.Metrics(cfg.Metrics, handler)
	}
	handler = middleware.Recovery(cfg.Logger, handler)
	return handler
}

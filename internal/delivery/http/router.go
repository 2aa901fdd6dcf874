package http

import (
	"log/slog"
	"net/http"

	"geoevents/internal/delivery/http/controllers"
	"geoevents/internal/delivery/http/middleware"
	"geoevents/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps groups what NewRouter needs to build the handler chain.
type RouterDeps struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	Registry       *prometheus.Registry
	AllowedOrigins []string

	Auth   *controllers.AuthController
	Events *controllers.EventController
	Health *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes and wraps
// it with logging, metrics, panic recovery and CORS.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(d.Verifier, d.Logger)
	optionalAuth := middleware.OptionalAuth(d.Verifier, d.Logger)

	// Auth
	mux.HandleFunc("POST /auth", d.Auth.Authenticate)

	// Events
	mux.HandleFunc("GET /events", optionalAuth(d.Events.GetEvents))
	mux.HandleFunc("POST /events", requireAuth(d.Events.CreateEvent))
	mux.HandleFunc("PUT /events", requireAuth(d.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events", requireAuth(d.Events.DeleteEvent))

	// Operations
	mux.HandleFunc("GET /healthz", d.Health.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry}))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	metrics := middleware.NewMetrics(d.Registry)
	var handler http.Handler = middleware.CORS(d.AllowedOrigins, mux)
	handler = middleware.Recover(d.Logger, handler)
	handler = metrics.Middleware(handler)
	return middleware.LoggingMiddleware(d.Logger, handler)
}

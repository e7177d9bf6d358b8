package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/hbnb-stays/hbnb/internal/amenities"
	"github.com/hbnb-stays/hbnb/internal/auth"
	"github.com/hbnb-stays/hbnb/internal/observability"
	"github.com/hbnb-stays/hbnb/internal/places"
	"github.com/hbnb-stays/hbnb/internal/reviews"
	"github.com/hbnb-stays/hbnb/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthMiddleware   *auth.Middleware
	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	AmenitiesHandler *amenities.Handler
	PlacesHandler    *places.Handler
	ReviewsHandler   *reviews.Handler
	Metrics          *observability.Metrics
}

// NewRouter assembles the full route tree under /api/v1.
func NewRouter(p RouterParams) chi.Router {
	r := chi.NewRouter()
	r.Use(MiddlewareStack(MiddlewareConfig{Logger: p.Logger, Config: p.Config, Metrics: p.Metrics})...)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", p.Metrics.Handler())
	}

	loginLimit := 10
	if p.Config != nil && p.Config.LoginRateLimit > 0 {
		loginLimit = p.Config.LoginRateLimit
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(loginLimit, time.Minute))
			p.AuthHandler.MountRoutes(r, p.AuthMiddleware)
		})
		r.Route("/users", func(r chi.Router) {
			p.UsersHandler.MountRoutes(r, p.AuthMiddleware)
		})
		r.Route("/amenities", func(r chi.Router) {
			p.AmenitiesHandler.MountRoutes(r, p.AuthMiddleware)
		})
		r.Route("/places", func(r chi.Router) {
			p.PlacesHandler.MountRoutes(r, p.AuthMiddleware)
			p.ReviewsHandler.MountPlaceRoutes(r)
		})
		r.Route("/reviews", func(r chi.Router) {
			p.ReviewsHandler.MountRoutes(r, p.AuthMiddleware)
		})
	})

	return r
}

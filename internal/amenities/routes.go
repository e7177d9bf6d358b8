package amenities

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AuthMiddleware is the subset of the auth middleware the amenity routes need.
type AuthMiddleware interface {
	RequireAuth(http.Handler) http.Handler
	RequireAdmin(http.Handler) http.Handler
}

// MountRoutes registers amenity routes. Reads are public; every mutation is
// admin-only.
func (h *Handler) MountRoutes(r chi.Router, mw AuthMiddleware) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth, mw.RequireAdmin)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

package reviews

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AuthMiddleware is the subset of the auth middleware the review routes need.
type AuthMiddleware interface {
	RequireAuth(http.Handler) http.Handler
}

// MountRoutes registers review routes. Reads are public; mutations require
// an authenticated caller with author-or-admin checks in the service.
func (h *Handler) MountRoutes(r chi.Router, mw AuthMiddleware) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

// MountPlaceRoutes registers the nested place-review listing under the
// places resource.
func (h *Handler) MountPlaceRoutes(r chi.Router) {
	r.Get("/{id}/reviews", h.listByPlace)
}

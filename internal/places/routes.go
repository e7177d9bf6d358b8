package places

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AuthMiddleware is the subset of the auth middleware the place routes need.
type AuthMiddleware interface {
	RequireAuth(http.Handler) http.Handler
}

// MountRoutes registers place routes. Reads are public; creation requires
// any authenticated caller; update and delete check owner-or-admin in the
// service.
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

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AuthMiddleware is the subset of the auth middleware the users routes need.
type AuthMiddleware interface {
	RequireAuth(http.Handler) http.Handler
	RequireAdmin(http.Handler) http.Handler
}

// MountRoutes registers user routes. Registration is public; listing and
// deletion are admin-only; fetch and update require an authenticated caller
// with per-record checks in the handler and service.
func (h *Handler) MountRoutes(r chi.Router, mw AuthMiddleware) {
	r.Post("/", h.create)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth, mw.RequireAdmin)
		r.Get("/", h.list)
		r.Delete("/{id}", h.delete)
	})
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
	})
}

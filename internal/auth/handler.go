package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hbnb-stays/hbnb/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	revoked  *RevocationStore
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, revoked *RevocationStore) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		revoked:  revoked,
		validate: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router. Login is
// public; logout runs behind RequireAuth.
func (h *Handler) MountRoutes(r chi.Router, mw *Middleware) {
	r.Post("/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth)
		r.Post("/logout", h.handleLogout)
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := TokenFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	if err := h.revoked.Revoke(r.Context(), token.ID, token.ExpiresAt); err != nil {
		h.logger.Error("revoke token", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.NoContent(w)
}

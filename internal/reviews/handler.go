package reviews

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hbnb-stays/hbnb/internal/platform/httpx"
	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Handler manages review endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "text, rating (1-5) and place_id are required")
		return
	}

	claims, _ := shared.ClaimsFromContext(r.Context())
	review, err := h.service.Create(r.Context(), req, claims)
	if err != nil {
		h.logger.Warn("create review failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, review)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list reviews failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Review{}
	}
	httpx.JSON(w, http.StatusOK, result)
}

// listByPlace serves GET /places/{id}/reviews.
func (h *Handler) listByPlace(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListByPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Review{}
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, review)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid review fields")
		return
	}

	claims, _ := shared.ClaimsFromContext(r.Context())
	review, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req, claims)
	if err != nil {
		h.logger.Warn("update review failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, review)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := shared.ClaimsFromContext(r.Context())
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), claims); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

package places

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hbnb-stays/hbnb/internal/platform/httpx"
	"github.com/hbnb-stays/hbnb/internal/shared"
)

// Handler manages place endpoints.
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
	var req CreatePlaceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid place fields")
		return
	}

	claims, _ := shared.ClaimsFromContext(r.Context())
	place, err := h.service.Create(r.Context(), req, claims)
	if err != nil {
		h.logger.Warn("create place failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, place)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list places failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Place{}
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	place, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, place)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePlaceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid place fields")
		return
	}

	claims, _ := shared.ClaimsFromContext(r.Context())
	place, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req, claims)
	if err != nil {
		h.logger.Warn("update place failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, place)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := shared.ClaimsFromContext(r.Context())
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), claims); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

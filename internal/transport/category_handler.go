package transport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockroom/internal/command"
	"stockroom/internal/dispatch"
	"stockroom/internal/middleware"
)

// CategoryHandler translates HTTP requests into category commands and queries.
type CategoryHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(dispatcher *dispatch.Dispatcher, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{dispatcher: dispatcher, logger: logger}
}

// RegisterRoutes registers all category routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.logger.Debug("Create category decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, result)
}

// Update handles PUT /api/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateCategoryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.logger.Debug("Update category decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cmd.ID = chi.URLParam(r, "id")

	result, err := h.dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /api/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cmd := command.DeleteCategoryCommand{ID: chi.URLParam(r, "id")}

	result, err := h.dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Get handles GET /api/categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := command.GetCategoryQuery{ID: chi.URLParam(r, "id")}

	result, err := h.dispatcher.Dispatch(r.Context(), q)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// List handles GET /api/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := command.ListCategoriesQuery{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 20),
	}

	result, err := h.dispatcher.Dispatch(r.Context(), q)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

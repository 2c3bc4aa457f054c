package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockroom/internal/command"
	"stockroom/internal/dispatch"
	"stockroom/internal/middleware"
)

// ProductHandler translates HTTP requests into product commands and queries.
// All routing decisions beyond URL shape live in the dispatcher.
type ProductHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(dispatcher *dispatch.Dispatcher, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{dispatcher: dispatcher, logger: logger}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/low-stock", h.LowStock)
		r.Get("/recent", h.Recent)
		r.Get("/category/{categoryID}", h.ByCategory)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProductCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.logger.Debug("Create product decode failed", zap.Error(err))
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

// Update handles PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateProductCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.logger.Debug("Update product decode failed", zap.Error(err))
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

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cmd := command.DeleteProductCommand{ID: chi.URLParam(r, "id")}

	result, err := h.dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := command.GetProductQuery{ID: chi.URLParam(r, "id")}

	result, err := h.dispatcher.Dispatch(r.Context(), q)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := command.ListProductsQuery{
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

// Search handles GET /api/products/search?q=term
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := command.SearchProductsQuery{
		Term:     r.URL.Query().Get("q"),
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

// LowStock handles GET /api/products/low-stock
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.dispatcher.Dispatch(r.Context(), command.GetLowStockProductsQuery{})
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Recent handles GET /api/products/recent?limit=n
func (h *ProductHandler) Recent(w http.ResponseWriter, r *http.Request) {
	q := command.GetRecentProductsQuery{Limit: queryInt(r, "limit", 0)}

	result, err := h.dispatcher.Dispatch(r.Context(), q)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// ByCategory handles GET /api/products/category/{categoryID}
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	q := command.GetProductsByCategoryQuery{CategoryID: chi.URLParam(r, "categoryID")}

	result, err := h.dispatcher.Dispatch(r.Context(), q)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

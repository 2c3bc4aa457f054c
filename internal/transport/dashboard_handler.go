package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"stockroom/internal/command"
	"stockroom/internal/dispatch"
	"stockroom/internal/middleware"
)

// DashboardHandler serves the aggregate metrics and the audit trail.
type DashboardHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dispatcher *dispatch.Dispatcher, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dispatcher: dispatcher, logger: logger}
}

// RegisterRoutes registers dashboard and audit log routes
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/dashboard", h.Get)
	r.Get("/api/audit-logs/recent", h.RecentAuditLogs)
}

// Get handles GET /api/dashboard
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.dispatcher.Dispatch(r.Context(), command.GetDashboardQuery{})
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// RecentAuditLogs handles GET /api/audit-logs/recent?limit=n
func (h *DashboardHandler) RecentAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := command.GetRecentAuditLogsQuery{Limit: queryInt(r, "limit", 0)}

	result, err := h.dispatcher.Dispatch(r.Context(), q)
	if err != nil {
		middleware.WriteError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

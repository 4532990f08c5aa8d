package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-cms/internal/service"
)

// AnalyticsHandler serves the dashboard summary
type AnalyticsHandler struct {
	service *service.AnalyticsService
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger,
	}
}

// GetAnalytics handles GET /api/analytics
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to compute analytics")
		return
	}

	WriteJSON(w, http.StatusOK, summary, h.logger)
}

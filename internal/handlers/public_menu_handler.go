package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-cms/internal/service"
)

// PublicMenuHandler serves the guest-facing menu
type PublicMenuHandler struct {
	service *service.PublicMenuService
	logger  *slog.Logger
}

// NewPublicMenuHandler creates a new public menu handler
func NewPublicMenuHandler(service *service.PublicMenuService, logger *slog.Logger) *PublicMenuHandler {
	return &PublicMenuHandler{
		service: service,
		logger:  logger,
	}
}

// GetMenu handles GET /api/menu?lang=xx
func (h *PublicMenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")

	data, err := h.service.Render(r.Context(), lang)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to render public menu", "language", lang)
		return
	}

	WriteRaw(w, http.StatusOK, "application/json", data, h.logger)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
)

// RestaurantHandler handles restaurant profile requests
type RestaurantHandler struct {
	service *service.RestaurantService
	logger  *slog.Logger
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(service *service.RestaurantService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		logger:  logger,
	}
}

// GetInfo handles GET /api/restaurant-info
func (h *RestaurantHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Get(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to get restaurant info")
		return
	}

	WriteJSON(w, http.StatusOK, info, h.logger)
}

// SaveInfo handles POST /api/restaurant-info
func (h *RestaurantHandler) SaveInfo(w http.ResponseWriter, r *http.Request) {
	var in models.RestaurantInfoInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	info, err := h.service.Save(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to save restaurant info")
		return
	}

	WriteJSON(w, http.StatusOK, info, h.logger)
}

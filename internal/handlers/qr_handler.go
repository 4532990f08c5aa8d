package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-cms/internal/service"
)

// QRHandler serves the public menu QR code
type QRHandler struct {
	service *service.QRService
	logger  *slog.Logger
}

// NewQRHandler creates a new QR handler
func NewQRHandler(service *service.QRService, logger *slog.Logger) *QRHandler {
	return &QRHandler{
		service: service,
		logger:  logger,
	}
}

// GetQRCode handles GET /api/qr-code
func (h *QRHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.service.Generate()
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to generate qr code")
		return
	}

	WriteJSON(w, http.StatusOK, code, h.logger)
}

// GetQRCodePNG handles GET /api/qr-code.png
func (h *QRHandler) GetQRCodePNG(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.PNG()
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to generate qr code")
		return
	}

	WriteRaw(w, http.StatusOK, "image/png", png, h.logger)
}

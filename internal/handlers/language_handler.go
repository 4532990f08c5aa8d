package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
	"github.com/go-chi/chi/v5"
)

// LanguageHandler handles supported language requests
type LanguageHandler struct {
	service *service.LanguageService
	logger  *slog.Logger
}

// NewLanguageHandler creates a new language handler
func NewLanguageHandler(service *service.LanguageService, logger *slog.Logger) *LanguageHandler {
	return &LanguageHandler{
		service: service,
		logger:  logger,
	}
}

// ListLanguages handles GET /api/supported-languages
func (h *LanguageHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string][]models.Language{
		"languages": h.service.List(),
	}, h.logger)
}

// AddLanguage handles POST /api/languages/add
func (h *LanguageHandler) AddLanguage(w http.ResponseWriter, r *http.Request) {
	var lang models.Language
	if err := decodeJSON(w, r, &lang); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	added, err := h.service.Add(lang)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to add language", "code", lang.Code)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Language " + added.Name + " added",
		"language": added,
	}, h.logger)
}

// RemoveLanguage handles DELETE /api/languages/remove/{code}
func (h *LanguageHandler) RemoveLanguage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	lang, deleted, err := h.service.Remove(r.Context(), code)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to remove language", "code", code)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":              "Language " + lang.Name + " removed",
		"translations_deleted": deleted,
	}, h.logger)
}

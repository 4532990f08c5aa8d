package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
)

// TranslationHandler handles menu item and category translation requests
type TranslationHandler struct {
	service *service.TranslationService
	logger  *slog.Logger
}

// NewTranslationHandler creates a new translation handler
func NewTranslationHandler(service *service.TranslationService, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{
		service: service,
		logger:  logger,
	}
}

// ListForItem handles GET /api/translations/{id}
func (h *TranslationHandler) ListForItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	translations, err := h.service.ListForItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to list translations", "menu_item_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, translations, h.logger)
}

// CreateItemTranslation handles POST /api/translations
func (h *TranslationHandler) CreateItemTranslation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MenuItemID   int64   `json:"menu_item_id"`
		LanguageCode string  `json:"language_code"`
		Name         string  `json:"name"`
		Description  *string `json:"description"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	t, err := h.service.CreateItemTranslation(r.Context(), models.TranslationInput{
		ParentID:     body.MenuItemID,
		LanguageCode: body.LanguageCode,
		Name:         body.Name,
		Description:  body.Description,
	})
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to create translation", "menu_item_id", body.MenuItemID)
		return
	}

	WriteJSON(w, http.StatusOK, t, h.logger)
}

// GenerateForItem handles POST /api/translations/generate/{id}
// The body is the list of language codes to generate.
func (h *TranslationHandler) GenerateForItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var codes []string
	if err := decodeJSON(w, r, &codes); err != nil {
		WriteError(w, http.StatusBadRequest, "Body must be a list of language codes", h.logger)
		return
	}

	result, err := h.service.GenerateForItem(r.Context(), id, codes)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to generate translations", "menu_item_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}

// BatchGenerate handles POST /api/translations/batch-generate
func (h *TranslationHandler) BatchGenerate(w http.ResponseWriter, r *http.Request) {
	var codes []string
	if err := decodeJSON(w, r, &codes); err != nil {
		WriteError(w, http.StatusBadRequest, "Body must be a list of language codes", h.logger)
		return
	}

	result, err := h.service.BatchGenerate(r.Context(), codes)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to batch generate translations")
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}

// UpdateItemTranslation handles PUT /api/translations/{id}
func (h *TranslationHandler) UpdateItemTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var update models.TranslationUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	t, err := h.service.UpdateItemTranslation(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to update translation", "translation_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, t, h.logger)
}

// DeleteItemTranslation handles DELETE /api/translations/{id}
func (h *TranslationHandler) DeleteItemTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	if err := h.service.DeleteItemTranslation(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger, "failed to delete translation", "translation_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, message{Message: "Translation deleted"}, h.logger)
}

// CreateCategoryTranslation handles POST /api/category-translations
func (h *TranslationHandler) CreateCategoryTranslation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CategoryID   int64  `json:"category_id"`
		LanguageCode string `json:"language_code"`
		Name         string `json:"name"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	t, err := h.service.CreateCategoryTranslation(r.Context(), models.TranslationInput{
		ParentID:     body.CategoryID,
		LanguageCode: body.LanguageCode,
		Name:         body.Name,
	})
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to create category translation", "category_id", body.CategoryID)
		return
	}

	WriteJSON(w, http.StatusOK, t, h.logger)
}

// GenerateForCategory handles POST /api/category-translations/generate/{id}
func (h *TranslationHandler) GenerateForCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var codes []string
	if err := decodeJSON(w, r, &codes); err != nil {
		WriteError(w, http.StatusBadRequest, "Body must be a list of language codes", h.logger)
		return
	}

	result, err := h.service.GenerateForCategory(r.Context(), id, codes)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to generate category translations", "category_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}

// UpdateCategoryTranslation handles PUT /api/category-translations/{id}
func (h *TranslationHandler) UpdateCategoryTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	t, err := h.service.UpdateCategoryTranslation(r.Context(), id, body.Name)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to update category translation", "translation_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, t, h.logger)
}

// DeleteCategoryTranslation handles DELETE /api/category-translations/{id}
func (h *TranslationHandler) DeleteCategoryTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	if err := h.service.DeleteCategoryTranslation(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger, "failed to delete category translation", "translation_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, message{Message: "Translation deleted"}, h.logger)
}

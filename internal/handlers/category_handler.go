package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
	"github.com/go-chi/chi/v5"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service *service.CategoryService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
	}
}

// ListCategories handles GET /api/categories
// Returns the categories in server order, both as names and as full records
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to list categories")
		return
	}

	WriteJSON(w, http.StatusOK, models.NewCategoryList(categories), h.logger)
}

// ListWithTranslations handles GET /api/categories-with-translations
func (h *CategoryHandler) ListWithTranslations(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListWithTranslations(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to list categories with translations")
		return
	}
	for i := range categories {
		if categories[i].Translations == nil {
			categories[i].Translations = []models.CategoryTranslation{}
		}
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// GetByName handles GET /api/categories/by-name/{name}
func (h *CategoryHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	category, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to get category", "name", name)
		return
	}

	WriteJSON(w, http.StatusOK, category, h.logger)
}

// CreateCategory handles POST /api/categories
// - 200: created category
// - 400: invalid body or name already exists
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.logger.Warn("failed to decode category request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to create category", "name", in.Name)
		return
	}

	h.logger.Info("category created", "category_id", category.ID, "name", category.Name)
	WriteJSON(w, http.StatusOK, category, h.logger)
}

// UpdateCategory handles PUT /api/categories/{id}
// - 200: updated category
// - 400: invalid body or another category has the name
// - 404: category not found
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var in models.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.logger.Warn("failed to decode category request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	category, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to update category", "category_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, category, h.logger)
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger, "failed to delete category", "category_id", id)
		return
	}

	h.logger.Info("category deleted", "category_id", id)
	WriteJSON(w, http.StatusOK, message{Message: "Category deleted"}, h.logger)
}

// ReorderCategories handles PUT /api/categories/reorder
// The body is the complete ordered category list; position i becomes order i.
func (h *CategoryHandler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := decodeJSON(w, r, &categories); err != nil {
		h.logger.Warn("failed to decode reorder request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.service.Reorder(r.Context(), categories); err != nil {
		writeServiceError(w, err, h.logger, "failed to reorder categories", "count", len(categories))
		return
	}

	h.logger.Info("categories reordered", "count", len(categories))
	WriteJSON(w, http.StatusOK, message{Message: "Categories reordered"}, h.logger)
}

// InitializeCategories handles POST /api/categories/initialize
func (h *CategoryHandler) InitializeCategories(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.Initialize(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to initialize categories")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Categories initialized",
		"created":    created,
		"categories": models.PredefinedCategories,
	}, h.logger)
}

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
)

// maxUploadBytes caps multipart menu item requests
const maxUploadBytes = 10 << 20

// MenuItemHandler handles menu item HTTP requests
type MenuItemHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuItemHandler creates a new menu item handler
func NewMenuItemHandler(service *service.MenuService, logger *slog.Logger) *MenuItemHandler {
	return &MenuItemHandler{
		service: service,
		logger:  logger,
	}
}

// ListMenuItems handles GET /api/menu-items
func (h *MenuItemHandler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListWithTranslations handles GET /api/menu-items-with-translations
func (h *MenuItemHandler) ListWithTranslations(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *MenuItemHandler) list(w http.ResponseWriter, r *http.Request, withTranslations bool) {
	items, err := h.service.List(r.Context(), withTranslations)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to list menu items")
		return
	}
	if withTranslations {
		for i := range items {
			if items[i].Translations == nil {
				items[i].Translations = []models.Translation{}
			}
		}
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetMenuItem handles GET /api/menu-items/{id}
func (h *MenuItemHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to get menu item", "menu_item_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// CreateMenuItem handles POST /api/menu-items (multipart/form-data)
func (h *MenuItemHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	in, upload, cleanup, err := parseMenuItemForm(w, r)
	if err != nil {
		h.logger.Warn("invalid menu item form", "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	defer cleanup()

	item, err := h.service.Create(r.Context(), in, upload)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to create menu item")
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// UpdateMenuItem handles PUT /api/menu-items/{id} (multipart/form-data)
// Only the submitted fields change.
func (h *MenuItemHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	in, upload, cleanup, err := parseMenuItemForm(w, r)
	if err != nil {
		h.logger.Warn("invalid menu item form", "menu_item_id", id, "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	defer cleanup()

	item, err := h.service.Update(r.Context(), id, in, upload)
	if err != nil {
		writeServiceError(w, err, h.logger, "failed to update menu item", "menu_item_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// DeleteMenuItem handles DELETE /api/menu-items/{id}
func (h *MenuItemHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger, "failed to delete menu item", "menu_item_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, message{Message: "Menu item deleted"}, h.logger)
}

// parseMenuItemForm reads the menu item form fields. Absent fields stay nil.
// Both multipart and urlencoded bodies are accepted.
func parseMenuItemForm(w http.ResponseWriter, r *http.Request) (models.MenuItemInput, *service.Upload, func(), error) {
	var in models.MenuItemInput
	noop := func() {}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return in, nil, noop, fmt.Errorf("invalid form data")
	}

	in.NameHR = formValue(r, "name_hr")
	in.DescriptionHR = formValue(r, "description_hr")
	in.Category = formValue(r, "category")

	if raw := formValue(r, "price"); raw != nil {
		price, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			return in, nil, noop, fmt.Errorf("invalid price")
		}
		in.Price = &price
	}

	flags := map[string]**bool{
		"is_available":       &in.IsAvailable,
		"is_vegetarian":      &in.IsVegetarian,
		"is_vegan":           &in.IsVegan,
		"contains_gluten":    &in.ContainsGluten,
		"contains_dairy":     &in.ContainsDairy,
		"contains_nuts":      &in.ContainsNuts,
		"contains_fish":      &in.ContainsFish,
		"contains_shellfish": &in.ContainsShellfish,
		"contains_eggs":      &in.ContainsEggs,
		"is_spicy":           &in.IsSpicy,
	}
	for field, dst := range flags {
		if raw := formValue(r, field); raw != nil {
			v := models.ParseFormBool(*raw)
			*dst = &v
		}
	}

	if r.MultipartForm == nil {
		return in, nil, noop, nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, func() { _ = r.MultipartForm.RemoveAll() }, nil
	}
	if err != nil {
		return in, nil, noop, fmt.Errorf("invalid image upload")
	}
	if header.Size == 0 || header.Filename == "" {
		file.Close()
		return in, nil, func() { _ = r.MultipartForm.RemoveAll() }, nil
	}

	cleanup := func() {
		file.Close()
		_ = r.MultipartForm.RemoveAll()
	}
	return in, &service.Upload{Filename: header.Filename, Content: file}, cleanup, nil
}

// formValue returns the first value of key, or nil when the field was not sent
func formValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

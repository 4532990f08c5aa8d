package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/menu-cms/internal/images"
	"github.com/Lixing-Zhang/menu-cms/internal/languages"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
	"github.com/Lixing-Zhang/menu-cms/internal/service"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// parseID reads a positive int64 URL parameter
func parseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// errorStatus maps domain errors to an HTTP status and client message
func errorStatus(err error) (int, string) {
	switch {
	case service.IsValidation(err):
		return http.StatusBadRequest, service.ValidationMessage(err)
	case errors.Is(err, repository.ErrCategoryNotFound):
		return http.StatusNotFound, "Category not found"
	case errors.Is(err, repository.ErrCategoryExists):
		return http.StatusBadRequest, "Category already exists"
	case errors.Is(err, repository.ErrMenuItemNotFound):
		return http.StatusNotFound, "Menu item not found"
	case errors.Is(err, repository.ErrTranslationNotFound):
		return http.StatusNotFound, "Translation not found"
	case errors.Is(err, repository.ErrTranslationExists):
		return http.StatusBadRequest, "Translation for this language already exists"
	case errors.Is(err, languages.ErrLanguageNotFound):
		return http.StatusNotFound, "Language not found"
	case errors.Is(err, languages.ErrLanguageExists):
		return http.StatusBadRequest, "Language already exists"
	case errors.Is(err, service.ErrUnsupportedLanguage):
		return http.StatusBadRequest, "Language is not supported"
	case errors.Is(err, service.ErrDuplicateCategoryIDs):
		return http.StatusBadRequest, "Category list contains duplicate ids"
	case errors.Is(err, service.ErrNoMenuItems):
		return http.StatusNotFound, "There are no menu items"
	case errors.Is(err, images.ErrUnsupportedType):
		return http.StatusBadRequest, "Unsupported image type"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeServiceError logs err and answers with the mapped status
func writeServiceError(w http.ResponseWriter, err error, logger *slog.Logger, msg string, args ...any) {
	status, message := errorStatus(err)
	args = append(args, "error", err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, args...)
	} else {
		logger.Info(msg, args...)
	}
	WriteError(w, status, message, logger)
}

// message is the body of endpoints that only acknowledge an action
type message struct {
	Message string `json:"message"`
}

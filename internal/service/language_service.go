package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	"github.com/Lixing-Zhang/menu-cms/internal/languages"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
)

// LanguageService manages the supported languages
type LanguageService struct {
	catalog      LanguageCatalog
	translations repository.TranslationRepository
	logger       *slog.Logger
	menuInvalidator
}

// NewLanguageService creates a new language service
func NewLanguageService(catalog LanguageCatalog, translations repository.TranslationRepository, menuCache cache.MenuCache, logger *slog.Logger) *LanguageService {
	return &LanguageService{
		catalog:         catalog,
		translations:    translations,
		logger:          logger,
		menuInvalidator: menuInvalidator{cache: menuCache, logger: logger},
	}
}

// List returns the supported languages sorted by code
func (s *LanguageService) List() []models.Language {
	return s.catalog.List()
}

// Add registers a new language
func (s *LanguageService) Add(lang models.Language) (models.Language, error) {
	lang.Normalize()
	if err := lang.Validate(); err != nil {
		return models.Language{}, wrapValidationError(err)
	}
	if err := s.catalog.Add(lang); err != nil {
		return models.Language{}, err
	}
	s.logger.Info("language added", "code", lang.Code, "name", lang.Name)
	return lang, nil
}

// Remove drops a language and every translation written in it. It returns
// the number of menu item translations deleted.
func (s *LanguageService) Remove(ctx context.Context, code string) (models.Language, int64, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	name, ok := s.catalog.Get(code)
	if !ok {
		return models.Language{}, 0, languages.ErrLanguageNotFound
	}

	deleted, err := s.translations.DeleteByLanguage(ctx, code)
	if err != nil {
		return models.Language{}, 0, err
	}
	if _, err := s.catalog.Remove(code); err != nil {
		return models.Language{}, 0, err
	}

	s.invalidate(ctx)
	s.logger.Info("language removed", "code", code, "translations_deleted", deleted)
	return models.Language{Code: code, Name: name}, deleted, nil
}

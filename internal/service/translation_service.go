package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
	"github.com/Lixing-Zhang/menu-cms/internal/translator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"
)

// LanguageCatalog is the set of supported translation languages
type LanguageCatalog interface {
	List() []models.Language
	Get(code string) (string, bool)
	Add(lang models.Language) error
	Remove(code string) (string, error)
}

// TranslationService manages item and category translations and their AI
// generation
type TranslationService struct {
	items       repository.MenuItemRepository
	categories  repository.CategoryRepository
	repo        repository.TranslationRepository
	languages   LanguageCatalog
	translator  translator.Translator
	concurrency int
	logger      *slog.Logger
	menuInvalidator
}

// NewTranslationService creates a new translation service. concurrency bounds
// the number of translator calls in flight.
func NewTranslationService(
	items repository.MenuItemRepository,
	categories repository.CategoryRepository,
	repo repository.TranslationRepository,
	languages LanguageCatalog,
	tr translator.Translator,
	concurrency int,
	menuCache cache.MenuCache,
	logger *slog.Logger,
) *TranslationService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &TranslationService{
		items:           items,
		categories:      categories,
		repo:            repo,
		languages:       languages,
		translator:      tr,
		concurrency:     concurrency,
		logger:          logger,
		menuInvalidator: menuInvalidator{cache: menuCache, logger: logger},
	}
}

// ListForItem returns the translations of a menu item
func (s *TranslationService) ListForItem(ctx context.Context, menuItemID int64) ([]models.Translation, error) {
	if _, err := s.items.GetByID(ctx, menuItemID, false); err != nil {
		return nil, err
	}
	return s.repo.ListForItem(ctx, menuItemID)
}

// CreateItemTranslation stores a manually written translation
func (s *TranslationService) CreateItemTranslation(ctx context.Context, in models.TranslationInput) (*models.Translation, error) {
	languageName, err := s.prepareInput(&in)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.GetByID(ctx, in.ParentID, false); err != nil {
		return nil, err
	}

	t := &models.Translation{
		MenuItemID:   in.ParentID,
		LanguageCode: in.LanguageCode,
		LanguageName: languageName,
		Name:         in.Name,
		Description:  in.Description,
	}
	if err := s.repo.CreateItemTranslation(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

// UpdateItemTranslation edits a translation and marks it as manually edited
func (s *TranslationService) UpdateItemTranslation(ctx context.Context, id int64, update models.TranslationUpdate) (*models.Translation, error) {
	if err := update.Validate(); err != nil {
		return nil, wrapValidationError(err)
	}
	t, err := s.repo.UpdateItemTranslation(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

// DeleteItemTranslation removes a menu item translation
func (s *TranslationService) DeleteItemTranslation(ctx context.Context, id int64) error {
	if err := s.repo.DeleteItemTranslation(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// CreateCategoryTranslation stores a manually written category translation
func (s *TranslationService) CreateCategoryTranslation(ctx context.Context, in models.TranslationInput) (*models.CategoryTranslation, error) {
	languageName, err := s.prepareInput(&in)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, in.ParentID); err != nil {
		return nil, err
	}

	t := &models.CategoryTranslation{
		CategoryID:   in.ParentID,
		LanguageCode: in.LanguageCode,
		LanguageName: languageName,
		Name:         in.Name,
	}
	if err := s.repo.CreateCategoryTranslation(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

// UpdateCategoryTranslation renames a category translation
func (s *TranslationService) UpdateCategoryTranslation(ctx context.Context, id int64, name string) (*models.CategoryTranslation, error) {
	name = strings.TrimSpace(name)
	if err := validation.Validate(name, validation.Required); err != nil {
		return nil, wrapValidationError(fmt.Errorf("name: %w", err))
	}
	t, err := s.repo.UpdateCategoryTranslation(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

// DeleteCategoryTranslation removes a category translation
func (s *TranslationService) DeleteCategoryTranslation(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategoryTranslation(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// generation is one planned translator call. Exactly one of message or the
// translation result is set once the call has run.
type generation struct {
	code     string
	language string
	parentID int64
	label    string
	source   translator.Text

	result  translator.Text
	message string
	err     error
}

// GenerateForItem translates a menu item into the requested languages.
// Unsupported languages and languages that already have a translation are
// reported as errors and skipped.
func (s *TranslationService) GenerateForItem(ctx context.Context, menuItemID int64, codes []string) (*models.GenerateResult, error) {
	item, err := s.items.GetByID(ctx, menuItemID, false)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.ListForItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.LanguageCode] = true
	}

	source := translator.Text{Name: item.NameHR, Description: deref(item.DescriptionHR)}
	jobs := s.plan(codes, have, menuItemID, item.NameHR, source)

	s.run(ctx, jobs, func(ctx context.Context, g *generation) error {
		out, err := s.translator.TranslateMenuItem(ctx, g.source, g.language)
		g.result = out
		return err
	})

	// Finished translations are stored even if the request deadline passed
	// while the translator was working.
	store := context.WithoutCancel(ctx)

	result := &models.GenerateResult{Translations: []models.GeneratedTranslation{}, Errors: []string{}}
	for _, g := range jobs {
		if g.message == "" && g.err == nil {
			var desc *string
			if g.result.Description != "" {
				desc = &g.result.Description
			}
			g.err = s.repo.CreateItemTranslation(store, &models.Translation{
				MenuItemID:    menuItemID,
				LanguageCode:  g.code,
				LanguageName:  g.language,
				Name:          g.result.Name,
				Description:   desc,
				IsAIGenerated: true,
			})
		}
		s.collect(result, g)
	}

	if result.Success = len(result.Translations) > 0; result.Success {
		s.invalidate(store)
	}
	return result, nil
}

// GenerateForCategory translates a category name into the requested languages
func (s *TranslationService) GenerateForCategory(ctx context.Context, categoryID int64, codes []string) (*models.GenerateResult, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.ListForCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.LanguageCode] = true
	}

	jobs := s.plan(codes, have, categoryID, category.Name, translator.Text{Name: category.Name})

	s.run(ctx, jobs, func(ctx context.Context, g *generation) error {
		name, err := s.translator.TranslateCategory(ctx, g.source.Name, g.language)
		g.result = translator.Text{Name: name}
		return err
	})

	store := context.WithoutCancel(ctx)

	result := &models.GenerateResult{Translations: []models.GeneratedTranslation{}, Errors: []string{}}
	for _, g := range jobs {
		if g.message == "" && g.err == nil {
			g.err = s.repo.CreateCategoryTranslation(store, &models.CategoryTranslation{
				CategoryID:    categoryID,
				LanguageCode:  g.code,
				LanguageName:  g.language,
				Name:          g.result.Name,
				IsAIGenerated: true,
			})
		}
		s.collect(result, g)
	}

	if result.Success = len(result.Translations) > 0; result.Success {
		s.invalidate(store)
	}
	return result, nil
}

// BatchGenerate translates every menu item into every requested language it
// does not have yet. Unsupported languages count as one error per item.
func (s *TranslationService) BatchGenerate(ctx context.Context, codes []string) (*models.BatchResult, error) {
	items, err := s.items.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoMenuItems
	}
	have, err := s.repo.ItemLanguages(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.BatchResult{Success: true, Results: []models.BatchFailure{}}
	var jobs []*generation
	for _, item := range items {
		for _, code := range models.NormalizeLanguageCodes(codes) {
			language, ok := s.languages.Get(code)
			if !ok {
				result.TotalErrors++
				continue
			}
			if have[item.ID][code] {
				continue
			}
			jobs = append(jobs, &generation{
				code:     code,
				language: language,
				parentID: item.ID,
				label:    item.NameHR,
				source:   translator.Text{Name: item.NameHR, Description: deref(item.DescriptionHR)},
			})
		}
	}

	s.run(ctx, jobs, func(ctx context.Context, g *generation) error {
		out, err := s.translator.TranslateMenuItem(ctx, g.source, g.language)
		g.result = out
		return err
	})

	store := context.WithoutCancel(ctx)

	for _, g := range jobs {
		if g.err == nil {
			var desc *string
			if g.result.Description != "" {
				desc = &g.result.Description
			}
			g.err = s.repo.CreateItemTranslation(store, &models.Translation{
				MenuItemID:    g.parentID,
				LanguageCode:  g.code,
				LanguageName:  g.language,
				Name:          g.result.Name,
				Description:   desc,
				IsAIGenerated: true,
			})
		}
		if g.err != nil {
			result.TotalErrors++
			result.Results = append(result.Results, models.BatchFailure{
				MenuItem: g.label,
				Language: g.language,
				Error:    g.err.Error(),
			})
			continue
		}
		result.TotalGenerated++
	}

	if result.TotalGenerated > 0 {
		s.invalidate(store)
	}
	s.logger.Info("batch translation finished",
		"generated", result.TotalGenerated,
		"errors", result.TotalErrors,
	)
	return result, nil
}

// plan turns requested codes into generation jobs, in request order.
// Rejected codes become jobs carrying only a message.
func (s *TranslationService) plan(codes []string, have map[string]bool, parentID int64, label string, source translator.Text) []*generation {
	var jobs []*generation
	for _, code := range models.NormalizeLanguageCodes(codes) {
		g := &generation{code: code, parentID: parentID, label: label, source: source}
		language, ok := s.languages.Get(code)
		switch {
		case !ok:
			g.message = fmt.Sprintf("Nepodržan jezik: %s", code)
		case have[code]:
			g.message = fmt.Sprintf("Prijevod za %s već postoji", language)
		}
		g.language = language
		jobs = append(jobs, g)
	}
	return jobs
}

// run calls fn for every pending job with at most s.concurrency calls in
// flight. Failures are recorded on the job; run itself never fails.
func (s *TranslationService) run(ctx context.Context, jobs []*generation, fn func(context.Context, *generation) error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, job := range jobs {
		if job.message != "" {
			continue
		}
		g.Go(func() error {
			if err := fn(gctx, job); err != nil {
				job.err = err
				s.logger.Warn("translation failed",
					"language", job.code,
					"subject", job.label,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *TranslationService) collect(result *models.GenerateResult, g *generation) {
	switch {
	case g.message != "":
		result.Errors = append(result.Errors, g.message)
	case g.err != nil:
		result.Errors = append(result.Errors, fmt.Sprintf("Greška pri generiranju prijevoda za %s: %v", g.language, g.err))
	default:
		result.Translations = append(result.Translations, models.GeneratedTranslation{
			LanguageCode: g.code,
			LanguageName: g.language,
			Name:         g.result.Name,
			Description:  g.result.Description,
		})
	}
}

// prepareInput validates a manual translation and resolves its language name
func (s *TranslationService) prepareInput(in *models.TranslationInput) (string, error) {
	in.LanguageCode = strings.ToLower(strings.TrimSpace(in.LanguageCode))
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return "", wrapValidationError(err)
	}
	name, ok := s.languages.Get(in.LanguageCode)
	if !ok {
		return "", ErrUnsupportedLanguage
	}
	return name, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

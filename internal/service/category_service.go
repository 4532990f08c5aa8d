package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
)

// CategoryService handles category business logic
type CategoryService struct {
	repo repository.CategoryRepository
	menuInvalidator
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repository.CategoryRepository, menuCache cache.MenuCache, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:            repo,
		menuInvalidator: menuInvalidator{cache: menuCache, logger: logger},
	}
}

// List returns all categories in display order
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

// ListWithTranslations returns all categories with their translations
func (s *CategoryService) ListWithTranslations(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListWithTranslations(ctx)
}

// GetByName returns a category by name
func (s *CategoryService) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return s.repo.GetByName(ctx, name)
}

// Create validates the input and appends a new category
func (s *CategoryService) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, wrapValidationError(err)
	}

	category, err := s.repo.Create(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Update renames a category and optionally sets its order
func (s *CategoryService) Update(ctx context.Context, id int64, in models.CategoryInput) (*models.Category, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, wrapValidationError(err)
	}

	category, err := s.repo.Update(ctx, id, in.Name, in.Order)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Delete removes a category; its menu items become uncategorised
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Reorder persists the full ordered list: position i gets order i. Only the
// ids are used; names and orders in the payload are ignored.
func (s *CategoryService) Reorder(ctx context.Context, categories []models.Category) error {
	ids := make([]int64, 0, len(categories))
	seen := make(map[int64]bool, len(categories))
	for _, c := range categories {
		if seen[c.ID] {
			return ErrDuplicateCategoryIDs
		}
		seen[c.ID] = true
		ids = append(ids, c.ID)
	}

	if err := s.repo.Reorder(ctx, ids); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Initialize makes sure the predefined categories exist
func (s *CategoryService) Initialize(ctx context.Context) (int, error) {
	created, err := s.repo.EnsureNames(ctx, models.PredefinedCategories)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		s.invalidate(ctx)
	}
	return created, nil
}

// SeedIfEmpty creates the predefined categories on a fresh database
func (s *CategoryService) SeedIfEmpty(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	return s.Initialize(ctx)
}

// CategoryIndex resolves the name references menu items hold. Items whose
// category name matches no category are treated as uncategorised.
type CategoryIndex struct {
	ordered []models.Category
	byName  map[string]int
}

// NewCategoryIndex indexes categories given in display order
func NewCategoryIndex(categories []models.Category) *CategoryIndex {
	byName := make(map[string]int, len(categories))
	for i, c := range categories {
		byName[c.Name] = i
	}
	return &CategoryIndex{ordered: categories, byName: byName}
}

// Lookup returns the category an item belongs to
func (ix *CategoryIndex) Lookup(item models.MenuItem) (models.Category, bool) {
	if item.Category == nil {
		return models.Category{}, false
	}
	i, ok := ix.byName[*item.Category]
	if !ok {
		return models.Category{}, false
	}
	return ix.ordered[i], true
}

// Position returns the display position of the named category
func (ix *CategoryIndex) Position(name string) (int, bool) {
	i, ok := ix.byName[name]
	return i, ok
}

// Len returns the number of indexed categories
func (ix *CategoryIndex) Len() int {
	return len(ix.ordered)
}

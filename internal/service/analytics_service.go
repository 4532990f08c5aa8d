package service

import (
	"context"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
)

// AnalyticsService computes the dashboard summary
type AnalyticsService struct {
	items      repository.MenuItemRepository
	categories repository.CategoryRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(items repository.MenuItemRepository, categories repository.CategoryRepository) *AnalyticsService {
	return &AnalyticsService{items: items, categories: categories}
}

// Summary counts items by availability, category and dietary flag
func (s *AnalyticsService) Summary(ctx context.Context) (*models.Analytics, error) {
	items, err := s.items.List(ctx, false)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	index := NewCategoryIndex(categories)

	out := &models.Analytics{Categories: make(map[string]int)}
	for _, item := range items {
		out.TotalItems++
		if item.IsAvailable {
			out.AvailableItems++
		}

		bucket := models.UncategorizedLabel
		if c, ok := index.Lookup(item); ok {
			bucket = c.Name
		}
		out.Categories[bucket]++

		a := &out.AllergenCounts
		count(&a.Vegetarian, item.IsVegetarian)
		count(&a.Vegan, item.IsVegan)
		count(&a.Gluten, item.ContainsGluten)
		count(&a.Dairy, item.ContainsDairy)
		count(&a.Nuts, item.ContainsNuts)
		count(&a.Fish, item.ContainsFish)
		count(&a.Shellfish, item.ContainsShellfish)
		count(&a.Eggs, item.ContainsEggs)
		count(&a.Spicy, item.IsSpicy)
	}
	out.UnavailableItems = out.TotalItems - out.AvailableItems
	out.TotalCategories = len(out.Categories)

	return out, nil
}

func count(n *int, flag bool) {
	if flag {
		*n++
	}
}

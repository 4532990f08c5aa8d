package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
	"github.com/yuin/goldmark"
)

// BaseLanguage is the language menu content is written in.
const BaseLanguage = "hr"

// PublicMenuService assembles the guest-facing menu
type PublicMenuService struct {
	categories repository.CategoryRepository
	items      repository.MenuItemRepository
	restaurant *RestaurantService
	cache      cache.MenuCache
	markdown   goldmark.Markdown
	logger     *slog.Logger
}

// NewPublicMenuService creates a new public menu service
func NewPublicMenuService(
	categories repository.CategoryRepository,
	items repository.MenuItemRepository,
	restaurant *RestaurantService,
	menuCache cache.MenuCache,
	logger *slog.Logger,
) *PublicMenuService {
	if menuCache == nil {
		menuCache = cache.Noop{}
	}
	return &PublicMenuService{
		categories: categories,
		items:      items,
		restaurant: restaurant,
		cache:      menuCache,
		markdown:   goldmark.New(),
		logger:     logger,
	}
}

// Render returns the JSON encoded menu for lang, from cache when possible
func (s *PublicMenuService) Render(ctx context.Context, lang string) ([]byte, error) {
	lang = normalizeLang(lang)

	gen, err := s.cache.Generation(ctx)
	cacheable := err == nil
	if err != nil {
		s.logger.Warn("menu cache generation read failed", "language", lang, "error", err)
	} else if data, ok, err := s.cache.Get(ctx, gen, lang); err != nil {
		s.logger.Warn("menu cache read failed", "language", lang, "error", err)
	} else if ok {
		return data, nil
	}

	menu, err := s.Build(ctx, lang)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(menu)
	if err != nil {
		return nil, fmt.Errorf("encode public menu: %w", err)
	}

	if cacheable {
		if err := s.cache.Set(ctx, gen, lang, data); err != nil {
			s.logger.Warn("menu cache write failed", "language", lang, "error", err)
		}
	}
	return data, nil
}

// Build assembles the menu: categories in display order with their available
// items, then available items without a known category.
func (s *PublicMenuService) Build(ctx context.Context, lang string) (*models.PublicMenu, error) {
	lang = normalizeLang(lang)

	info, err := s.restaurant.Get(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListWithTranslations(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx, true)
	if err != nil {
		return nil, err
	}

	header, err := s.header(info)
	if err != nil {
		return nil, err
	}

	menu := &models.PublicMenu{
		Language:   lang,
		Restaurant: header,
		Categories: make([]models.PublicMenuCategory, len(categories)),
	}
	for i, c := range categories {
		menu.Categories[i] = models.PublicMenuCategory{
			ID:    c.ID,
			Name:  localizedCategoryName(c, lang),
			Items: []models.PublicMenuItem{},
		}
	}

	index := NewCategoryIndex(categories)
	for _, item := range items {
		if !item.IsAvailable {
			continue
		}
		entry := localizedItem(item, lang)
		if c, ok := index.Lookup(item); ok {
			pos, _ := index.Position(c.Name)
			menu.Categories[pos].Items = append(menu.Categories[pos].Items, entry)
			continue
		}
		menu.Uncategorized = append(menu.Uncategorized, entry)
	}

	return menu, nil
}

func (s *PublicMenuService) header(info *models.RestaurantInfo) (models.PublicRestaurant, error) {
	var html bytes.Buffer
	if desc := deref(info.Description); desc != "" {
		if err := s.markdown.Convert([]byte(desc), &html); err != nil {
			return models.PublicRestaurant{}, fmt.Errorf("render restaurant description: %w", err)
		}
	}
	return models.PublicRestaurant{
		Name:            info.Name,
		DescriptionHTML: html.String(),
		Address:         deref(info.Address),
		Phone:           deref(info.Phone),
		Email:           deref(info.Email),
	}, nil
}

func localizedCategoryName(c models.Category, lang string) string {
	for _, t := range c.Translations {
		if t.LanguageCode == lang && t.Name != "" {
			return t.Name
		}
	}
	return c.Name
}

func localizedItem(item models.MenuItem, lang string) models.PublicMenuItem {
	name := item.NameHR
	description := deref(item.DescriptionHR)
	if lang == "en" {
		name, description = item.NameEN, deref(item.DescriptionEN)
	}
	for _, t := range item.Translations {
		if t.LanguageCode != lang {
			continue
		}
		if t.Name != "" {
			name = t.Name
		}
		if d := deref(t.Description); d != "" {
			description = d
		}
		break
	}

	return models.PublicMenuItem{
		ID:          item.ID,
		Name:        name,
		Description: description,
		Price:       item.Price,
		ImagePath:   deref(item.ImagePath),
		Allergens:   allergens(item),
	}
}

func allergens(item models.MenuItem) []string {
	flags := []struct {
		label string
		set   bool
	}{
		{"vegetarian", item.IsVegetarian},
		{"vegan", item.IsVegan},
		{"gluten", item.ContainsGluten},
		{"dairy", item.ContainsDairy},
		{"nuts", item.ContainsNuts},
		{"fish", item.ContainsFish},
		{"shellfish", item.ContainsShellfish},
		{"eggs", item.ContainsEggs},
		{"spicy", item.IsSpicy},
	}
	out := []string{}
	for _, f := range flags {
		if f.set {
			out = append(out, f.label)
		}
	}
	return out
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return BaseLanguage
	}
	return lang
}

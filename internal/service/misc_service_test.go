package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Lixing-Zhang/menu-cms/internal/languages"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
)

func TestLanguageService_RemoveDeletesTranslations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, _ := f.menu.Create(ctx, models.MenuItemInput{NameHR: strPtr("Gulaš"), Price: floatPtr(12)}, nil)
	_, _ = f.translations.CreateItemTranslation(ctx, models.TranslationInput{ParentID: item.ID, LanguageCode: "hu", Name: "Gulyás"})

	lang, deleted, err := f.languages.Remove(ctx, "HU")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if lang.Name != "Hungarian" || deleted != 1 {
		t.Errorf("Remove() = %+v, %d", lang, deleted)
	}

	left, _ := f.translations.ListForItem(ctx, item.ID)
	if len(left) != 0 {
		t.Errorf("translations left = %d", len(left))
	}
	if _, _, err := f.languages.Remove(ctx, "hu"); !errors.Is(err, languages.ErrLanguageNotFound) {
		t.Errorf("expected ErrLanguageNotFound, got %v", err)
	}
}

func TestLanguageService_Add(t *testing.T) {
	f := newFixture(t)

	if _, err := f.languages.Add(models.Language{Code: "HR", Name: " Croatian "}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := f.languages.Add(models.Language{Code: "hr", Name: "Hrvatski"}); !errors.Is(err, languages.ErrLanguageExists) {
		t.Errorf("expected ErrLanguageExists, got %v", err)
	}
	if _, err := f.languages.Add(models.Language{Code: "", Name: "Nothing"}); !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRestaurantService_DefaultAndSave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	info, err := f.restaurant.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if info.ID != 0 || info.Name != "Restaurant Menu" {
		t.Errorf("default = %+v", info)
	}

	if _, err := f.restaurant.Save(ctx, models.RestaurantInfoInput{Name: "Konoba", Email: strPtr("nope")}); !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	saved, err := f.restaurant.Save(ctx, models.RestaurantInfoInput{Name: "Konoba"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == 0 {
		t.Error("expected stored id")
	}
}

func TestAnalyticsService_Summary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.categories.Create(ctx, models.CategoryInput{Name: "DESERT"})
	_, _ = f.menu.Create(ctx, models.MenuItemInput{NameHR: strPtr("Torta"), Price: floatPtr(5), Category: strPtr("DESERT"), ContainsNuts: boolPtr(true)}, nil)
	_, _ = f.menu.Create(ctx, models.MenuItemInput{NameHR: strPtr("Krafna"), Price: floatPtr(2), Category: strPtr("DESERT"), IsAvailable: boolPtr(false)}, nil)
	_, _ = f.menu.Create(ctx, models.MenuItemInput{NameHR: strPtr("Kruh"), Price: floatPtr(1), IsVegan: boolPtr(true)}, nil)
	_, _ = f.menu.Create(ctx, models.MenuItemInput{NameHR: strPtr("Stari"), Price: floatPtr(1), Category: strPtr("NEPOSTOJEĆA")}, nil)

	got, err := f.analytics.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if got.TotalItems != 4 || got.AvailableItems != 3 || got.UnavailableItems != 1 {
		t.Errorf("counts = %+v", got)
	}
	if got.Categories["DESERT"] != 2 || got.Categories[models.UncategorizedLabel] != 2 {
		t.Errorf("Categories = %v", got.Categories)
	}
	if got.TotalCategories != 2 {
		t.Errorf("TotalCategories = %d, want 2", got.TotalCategories)
	}
	if got.AllergenCounts.Nuts != 1 || got.AllergenCounts.Vegan != 1 {
		t.Errorf("AllergenCounts = %+v", got.AllergenCounts)
	}
}

func TestQRService(t *testing.T) {
	svc := NewQRService("https://menu.example.com")

	png, err := svc.PNG()
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("PNG() did not return a PNG image")
	}

	code, err := svc.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if code.MenuURL != "https://menu.example.com" {
		t.Errorf("MenuURL = %s", code.MenuURL)
	}
	decoded, err := base64.StdEncoding.DecodeString(code.QRCode)
	if err != nil || !bytes.Equal(decoded, png) {
		t.Error("QRCode is not the base64 of the PNG")
	}
}

func TestPublicMenuService_Build(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.restaurant.Save(ctx, models.RestaurantInfoInput{Name: "Konoba", Description: strPtr("**Domaće** od 1972.")})
	hot, _ := f.categories.Create(ctx, models.CategoryInput{Name: "TOPLA PREDJELA"})
	_, _ = f.categories.Create(ctx, models.CategoryInput{Name: "DESERT"})
	_, _ = f.translations.CreateCategoryTranslation(ctx, models.TranslationInput{ParentID: hot.ID, LanguageCode: "de", Name: "Warme Vorspeisen"})

	soup, _ := f.menu.Create(ctx, models.MenuItemInput{NameHR: strPtr("Juha"), Price: floatPtr(4), Category: strPtr("TOPLA PREDJELA"), IsVegetarian: boolPtr(true)}, nil)
	_, _ = f.translations.CreateItemTranslation(ctx, models.TranslationInput{ParentID: soup.ID, LanguageCode: "de", Name: "Suppe"})
	_, _ = f.menu.Create(ctx, models.MenuItemInput{NameHR: strPtr("Rasprodano"), Price: floatPtr(4), Category: strPtr("TOPLA PREDJELA"), IsAvailable: boolPtr(false)}, nil)
	_, _ = f.menu.Create(ctx, models.MenuItemInput{NameHR: strPtr("Kruh"), Price: floatPtr(1)}, nil)

	menu, err := f.public.Build(ctx, "DE")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if menu.Language != "de" {
		t.Errorf("Language = %s", menu.Language)
	}
	if !strings.Contains(menu.Restaurant.DescriptionHTML, "<strong>Domaće</strong>") {
		t.Errorf("DescriptionHTML = %q", menu.Restaurant.DescriptionHTML)
	}
	if len(menu.Categories) != 2 || menu.Categories[0].Name != "Warme Vorspeisen" || menu.Categories[1].Name != "DESERT" {
		t.Fatalf("Categories = %+v", menu.Categories)
	}
	items := menu.Categories[0].Items
	if len(items) != 1 || items[0].Name != "Suppe" || items[0].Allergens[0] != "vegetarian" {
		t.Errorf("hot items = %+v", items)
	}
	if len(menu.Categories[1].Items) != 0 {
		t.Errorf("empty category items = %+v", menu.Categories[1].Items)
	}
	if len(menu.Uncategorized) != 1 || menu.Uncategorized[0].Name != "Kruh" {
		t.Errorf("Uncategorized = %+v", menu.Uncategorized)
	}

	base, _ := f.public.Build(ctx, "")
	if base.Language != BaseLanguage || base.Categories[0].Items[0].Name != "Juha" {
		t.Errorf("base menu = %+v", base.Categories[0])
	}
}

func TestPublicMenuService_RenderUsesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.categories.Create(ctx, models.CategoryInput{Name: "DESERT"})

	first, err := f.public.Render(ctx, "en")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, ok := f.cache.current("en"); !ok {
		t.Fatal("rendered menu was not cached")
	}

	_, _ = f.categories.Create(ctx, models.CategoryInput{Name: "JUHE"})
	second, _ := f.public.Render(ctx, "en")

	var a, b models.PublicMenu
	_ = json.Unmarshal(first, &a)
	_ = json.Unmarshal(second, &b)
	if len(a.Categories) != 1 || len(b.Categories) != 2 {
		t.Errorf("categories before/after write = %d/%d, want 1/2", len(a.Categories), len(b.Categories))
	}
}

func TestPublicMenuService_RenderDoesNotCacheAcrossInvalidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.categories.Create(ctx, models.CategoryInput{Name: "DESERT"})

	// A write lands between the cache lookup and the menu build.
	var once sync.Once
	f.cache.afterGet = func() {
		once.Do(func() {
			_, _ = f.categories.Create(ctx, models.CategoryInput{Name: "JUHE"})
		})
	}

	if _, err := f.public.Render(ctx, "en"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, ok := f.cache.current("en"); ok {
		t.Fatal("menu rendered before the write was stored under the new generation")
	}

	f.cache.afterGet = nil
	data, err := f.public.Render(ctx, "en")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var menu models.PublicMenu
	if err := json.Unmarshal(data, &menu); err != nil {
		t.Fatalf("decode menu: %v", err)
	}
	if len(menu.Categories) != 2 {
		t.Errorf("categories = %d, want 2", len(menu.Categories))
	}
	if _, ok := f.cache.current("en"); !ok {
		t.Error("fresh menu was not cached")
	}
}

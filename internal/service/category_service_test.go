package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
)

func TestCategoryService_CreateValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		in        models.CategoryInput
		wantValid bool
		wantErr   error
	}{
		{"blank", models.CategoryInput{Name: "   "}, false, nil},
		{"ok", models.CategoryInput{Name: "  JUHE "}, true, nil},
		{"duplicate after trim", models.CategoryInput{Name: "JUHE"}, true, repository.ErrCategoryExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := f.categories.Create(ctx, tt.in)
			if !tt.wantValid {
				if !IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if c.Name != "JUHE" {
				t.Errorf("name = %q, want trimmed", c.Name)
			}
		})
	}

	if f.cache.count() != 1 {
		t.Errorf("invalidations = %d, want 1", f.cache.count())
	}
}

func TestCategoryService_Reorder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, _ := f.categories.Create(ctx, models.CategoryInput{Name: "A"})
	b, _ := f.categories.Create(ctx, models.CategoryInput{Name: "B"})
	c, _ := f.categories.Create(ctx, models.CategoryInput{Name: "C"})

	if err := f.categories.Reorder(ctx, []models.Category{*c, *a, *c}); !errors.Is(err, ErrDuplicateCategoryIDs) {
		t.Fatalf("expected ErrDuplicateCategoryIDs, got %v", err)
	}

	// Orders in the payload are ignored: position wins.
	c.Order, b.Order, a.Order = 99, 98, 97
	if err := f.categories.Reorder(ctx, []models.Category{*c, *b, *a}); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	list, _ := f.categories.List(ctx)
	got := []string{list[0].Name, list[1].Name, list[2].Name}
	if got[0] != "C" || got[1] != "B" || got[2] != "A" {
		t.Errorf("order = %v, want [C B A]", got)
	}
	if list[0].Order != 0 || list[2].Order != 2 {
		t.Errorf("orders = %d..%d, want 0..2", list[0].Order, list[2].Order)
	}
}

func TestCategoryService_SeedIfEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.categories.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if created != len(models.PredefinedCategories) {
		t.Errorf("created = %d, want %d", created, len(models.PredefinedCategories))
	}

	list, _ := f.categories.List(ctx)
	if list[0].Name != "HLADNA PREDJELA" || list[len(list)-1].Name != "DESERT" {
		t.Errorf("seed order = %s..%s", list[0].Name, list[len(list)-1].Name)
	}

	// A user-deleted predefined category is not resurrected on restart.
	_ = f.categories.Delete(ctx, list[0].ID)
	again, _ := f.categories.SeedIfEmpty(ctx)
	if again != 0 {
		t.Errorf("second SeedIfEmpty() created %d", again)
	}

	restored, _ := f.categories.Initialize(ctx)
	if restored != 1 {
		t.Errorf("Initialize() created %d, want 1", restored)
	}
}

func TestCategoryIndex(t *testing.T) {
	ix := NewCategoryIndex([]models.Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})

	tests := []struct {
		name     string
		category *string
		wantID   int64
		wantOK   bool
	}{
		{"known", strPtr("B"), 2, true},
		{"dangling", strPtr("DELETED"), 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ix.Lookup(models.MenuItem{Category: tt.category})
			if ok != tt.wantOK || c.ID != tt.wantID {
				t.Errorf("Lookup() = %d, %v; want %d, %v", c.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}

	if pos, ok := ix.Position("B"); !ok || pos != 1 {
		t.Errorf("Position(B) = %d, %v", pos, ok)
	}
	if ix.Len() != 2 {
		t.Errorf("Len() = %d", ix.Len())
	}
}

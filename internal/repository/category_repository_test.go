package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
)

func TestCategoryRepository_CreateAppendsInOrder(t *testing.T) {
	repo := NewBunCategoryRepository(newTestDB(t))
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		c, err := repo.Create(ctx, name)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
		if c.Order != i {
			t.Errorf("Create(%s) order = %d, want %d", name, c.Order, i)
		}
	}

	if _, err := repo.Create(ctx, "B"); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := categoryNames(list); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("List() = %v", got)
	}
}

func TestCategoryRepository_Reorder(t *testing.T) {
	repo := NewBunCategoryRepository(newTestDB(t))
	ctx := context.Background()

	a, _ := repo.Create(ctx, "A")
	b, _ := repo.Create(ctx, "B")
	c, _ := repo.Create(ctx, "C")

	if err := repo.Reorder(ctx, []int64{c.ID, b.ID, a.ID, 9999}); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	list, _ := repo.List(ctx)
	if got := categoryNames(list); !reflect.DeepEqual(got, []string{"C", "B", "A"}) {
		t.Errorf("order after reorder = %v", got)
	}
	for i, cat := range list {
		if cat.Order != i {
			t.Errorf("%s order = %d, want %d", cat.Name, cat.Order, i)
		}
	}
}

func TestCategoryRepository_RenameCascadesToMenuItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunCategoryRepository(db)
	items := NewBunMenuItemRepository(db)
	ctx := context.Background()

	soups, _ := repo.Create(ctx, "JUHE")
	_, _ = repo.Create(ctx, "DESERT")

	inSoups := &models.MenuItem{NameHR: "Goveđa juha", NameEN: "Goveđa juha", Price: 4, Category: strPtr("JUHE"), IsAvailable: true}
	inDessert := &models.MenuItem{NameHR: "Torta", NameEN: "Torta", Price: 5, Category: strPtr("DESERT"), IsAvailable: true}
	for _, it := range []*models.MenuItem{inSoups, inDessert} {
		if err := items.Create(ctx, it); err != nil {
			t.Fatalf("create item: %v", err)
		}
	}

	if _, err := repo.Update(ctx, soups.ID, "DESERT", nil); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	order := 5
	renamed, err := repo.Update(ctx, soups.ID, "JUHE I VARIVA", &order)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if renamed.Name != "JUHE I VARIVA" || renamed.Order != 5 {
		t.Errorf("Update() = %+v", renamed)
	}

	got, _ := items.GetByID(ctx, inSoups.ID, false)
	if got.CategoryName() != "JUHE I VARIVA" {
		t.Errorf("item category = %q, want cascaded rename", got.CategoryName())
	}
	other, _ := items.GetByID(ctx, inDessert.ID, false)
	if other.CategoryName() != "DESERT" {
		t.Errorf("unrelated item category = %q", other.CategoryName())
	}

	if _, err := repo.Update(ctx, 4242, "X", nil); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryRepository_DeleteOrphansMenuItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunCategoryRepository(db)
	items := NewBunMenuItemRepository(db)
	translations := NewBunTranslationRepository(db)
	ctx := context.Background()

	cat, _ := repo.Create(ctx, "RIBLJA JELA")
	item := &models.MenuItem{NameHR: "Brancin", NameEN: "Brancin", Price: 18, Category: strPtr("RIBLJA JELA")}
	if err := items.Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := translations.CreateCategoryTranslation(ctx, &models.CategoryTranslation{
		CategoryID: cat.ID, LanguageCode: "en", LanguageName: "English", Name: "Fish dishes",
	}); err != nil {
		t.Fatalf("create category translation: %v", err)
	}

	if err := repo.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, _ := items.GetByID(ctx, item.ID, false)
	if got.Category != nil {
		t.Errorf("item category = %q, want nil", *got.Category)
	}
	left, _ := translations.ListForCategory(ctx, cat.ID)
	if len(left) != 0 {
		t.Errorf("expected category translations to be removed, got %d", len(left))
	}

	if err := repo.Delete(ctx, cat.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryRepository_EnsureNames(t *testing.T) {
	repo := NewBunCategoryRepository(newTestDB(t))
	ctx := context.Background()

	_, _ = repo.Create(ctx, "DESERT")

	created, err := repo.EnsureNames(ctx, []string{"HLADNA PREDJELA", "DESERT", "RIBLJA JELA"})
	if err != nil {
		t.Fatalf("EnsureNames() error = %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2", created)
	}

	list, _ := repo.List(ctx)
	if got := categoryNames(list); !reflect.DeepEqual(got, []string{"DESERT", "HLADNA PREDJELA", "RIBLJA JELA"}) {
		t.Errorf("List() = %v", got)
	}

	again, _ := repo.EnsureNames(ctx, []string{"DESERT"})
	if again != 0 {
		t.Errorf("second EnsureNames created %d", again)
	}
}

func TestCategoryRepository_GetByName(t *testing.T) {
	repo := NewBunCategoryRepository(newTestDB(t))
	ctx := context.Background()

	created, _ := repo.Create(ctx, "OBROČNE SALATE")

	got, err := repo.GetByName(ctx, "OBROČNE SALATE")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByName() id = %d, want %d", got.ID, created.ID)
	}

	if _, err := repo.GetByName(ctx, "NEPOSTOJEĆA"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

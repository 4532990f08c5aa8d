package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
)

func TestMenuItemRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewBunMenuItemRepository(db)
	translations := NewBunTranslationRepository(db)
	ctx := context.Background()

	item := &models.MenuItem{
		NameHR:       "Rižot",
		NameEN:       "Rižot",
		Price:        12.5,
		Category:     strPtr("TOPLA PREDJELA"),
		IsAvailable:  false,
		ContainsFish: true,
	}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	got, err := repo.GetByID(ctx, item.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.IsAvailable {
		t.Error("is_available=false must round-trip")
	}
	if !got.ContainsFish || got.Price != 12.5 {
		t.Errorf("GetByID() = %+v", got)
	}

	got.Price = 13
	got.IsAvailable = true
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if err := translations.CreateItemTranslation(ctx, &models.Translation{
		MenuItemID: item.ID, LanguageCode: "de", LanguageName: "German", Name: "Risotto", IsAIGenerated: true,
	}); err != nil {
		t.Fatalf("create translation: %v", err)
	}

	withTr, err := repo.List(ctx, true)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(withTr) != 1 || len(withTr[0].Translations) != 1 || withTr[0].Price != 13 || !withTr[0].IsAvailable {
		t.Fatalf("List(true) = %+v", withTr)
	}

	deleted, err := repo.Delete(ctx, item.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.NameHR != "Rižot" {
		t.Errorf("Delete() returned %+v", deleted)
	}

	if _, err := repo.GetByID(ctx, item.ID, false); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
	left, _ := translations.ListForItem(ctx, item.ID)
	if len(left) != 0 {
		t.Errorf("translations survived item delete: %d", len(left))
	}

	if _, err := repo.Delete(ctx, item.ID); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound on second delete, got %v", err)
	}
	if err := repo.Update(ctx, &models.MenuItem{ID: 777, NameHR: "x", NameEN: "x"}); !errors.Is(err, ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound on update, got %v", err)
	}
}

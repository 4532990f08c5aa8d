package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/uptrace/bun"
)

var (
	ErrTranslationNotFound = errors.New("translation not found")
	ErrTranslationExists   = errors.New("translation already exists")
)

// TranslationRepository defines data access for menu item and category
// translations
type TranslationRepository interface {
	ListForItem(ctx context.Context, menuItemID int64) ([]models.Translation, error)
	ItemLanguages(ctx context.Context) (map[int64]map[string]bool, error)
	CreateItemTranslation(ctx context.Context, t *models.Translation) error
	UpdateItemTranslation(ctx context.Context, id int64, update models.TranslationUpdate) (*models.Translation, error)
	DeleteItemTranslation(ctx context.Context, id int64) error

	ListForCategory(ctx context.Context, categoryID int64) ([]models.CategoryTranslation, error)
	CreateCategoryTranslation(ctx context.Context, t *models.CategoryTranslation) error
	UpdateCategoryTranslation(ctx context.Context, id int64, name string) (*models.CategoryTranslation, error)
	DeleteCategoryTranslation(ctx context.Context, id int64) error

	DeleteByLanguage(ctx context.Context, languageCode string) (int64, error)
}

// BunTranslationRepository implements TranslationRepository on top of Bun
type BunTranslationRepository struct {
	db *bun.DB
}

// NewBunTranslationRepository creates a new Bun-backed translation repository
func NewBunTranslationRepository(db *bun.DB) *BunTranslationRepository {
	return &BunTranslationRepository{db: db}
}

// ListForItem returns the translations of one menu item
func (r *BunTranslationRepository) ListForItem(ctx context.Context, menuItemID int64) ([]models.Translation, error) {
	translations := make([]models.Translation, 0)
	if err := r.db.NewSelect().
		Model(&translations).
		Where("t.menu_item_id = ?", menuItemID).
		Order("t.language_code ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	return translations, nil
}

// ItemLanguages returns, per menu item id, the set of language codes that
// already have a translation
func (r *BunTranslationRepository) ItemLanguages(ctx context.Context) (map[int64]map[string]bool, error) {
	var rows []struct {
		MenuItemID   int64  `bun:"menu_item_id"`
		LanguageCode string `bun:"language_code"`
	}
	if err := r.db.NewSelect().
		Model((*models.Translation)(nil)).
		Column("menu_item_id", "language_code").
		Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("list translation languages: %w", err)
	}

	out := make(map[int64]map[string]bool)
	for _, row := range rows {
		if out[row.MenuItemID] == nil {
			out[row.MenuItemID] = make(map[string]bool)
		}
		out[row.MenuItemID][row.LanguageCode] = true
	}
	return out, nil
}

// CreateItemTranslation inserts a translation unless one already exists for
// the item and language
func (r *BunTranslationRepository) CreateItemTranslation(ctx context.Context, t *models.Translation) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Translation)(nil)).
			Where("menu_item_id = ?", t.MenuItemID).
			Where("language_code = ?", t.LanguageCode).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrTranslationExists
		}
		_, err = tx.NewInsert().Model(t).Exec(ctx)
		return err
	})
	return wrapTranslationErr("create translation", err)
}

// UpdateItemTranslation applies the update and marks the translation as
// manually edited
func (r *BunTranslationRepository) UpdateItemTranslation(ctx context.Context, id int64, update models.TranslationUpdate) (*models.Translation, error) {
	translation := new(models.Translation)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(translation).Where("t.id = ?", id).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTranslationNotFound
			}
			return err
		}
		if update.Name != nil {
			translation.Name = *update.Name
		}
		if update.Description != nil {
			desc := *update.Description
			translation.Description = &desc
		}
		translation.IsAIGenerated = false

		_, err := tx.NewUpdate().
			Model(translation).
			Column("name", "description", "is_ai_generated").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, wrapTranslationErr("update translation", err)
	}
	return translation, nil
}

// DeleteItemTranslation removes a menu item translation
func (r *BunTranslationRepository) DeleteItemTranslation(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*models.Translation)(nil)).Where("id = ?", id).Exec(ctx)
	return deleteResult("delete translation", res, err)
}

// ListForCategory returns the translations of one category
func (r *BunTranslationRepository) ListForCategory(ctx context.Context, categoryID int64) ([]models.CategoryTranslation, error) {
	translations := make([]models.CategoryTranslation, 0)
	if err := r.db.NewSelect().
		Model(&translations).
		Where("ct.category_id = ?", categoryID).
		Order("ct.language_code ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list category translations: %w", err)
	}
	return translations, nil
}

// CreateCategoryTranslation inserts a category translation unless one already
// exists for the category and language
func (r *BunTranslationRepository) CreateCategoryTranslation(ctx context.Context, t *models.CategoryTranslation) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.CategoryTranslation)(nil)).
			Where("category_id = ?", t.CategoryID).
			Where("language_code = ?", t.LanguageCode).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrTranslationExists
		}
		_, err = tx.NewInsert().Model(t).Exec(ctx)
		return err
	})
	return wrapTranslationErr("create category translation", err)
}

// UpdateCategoryTranslation renames a category translation and marks it as
// manually edited
func (r *BunTranslationRepository) UpdateCategoryTranslation(ctx context.Context, id int64, name string) (*models.CategoryTranslation, error) {
	translation := new(models.CategoryTranslation)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(translation).Where("ct.id = ?", id).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTranslationNotFound
			}
			return err
		}
		translation.Name = name
		translation.IsAIGenerated = false

		_, err := tx.NewUpdate().
			Model(translation).
			Column("name", "is_ai_generated").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, wrapTranslationErr("update category translation", err)
	}
	return translation, nil
}

// DeleteCategoryTranslation removes a category translation
func (r *BunTranslationRepository) DeleteCategoryTranslation(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*models.CategoryTranslation)(nil)).Where("id = ?", id).Exec(ctx)
	return deleteResult("delete category translation", res, err)
}

// DeleteByLanguage removes every item and category translation in a language
// and returns the number of menu item translations removed
func (r *BunTranslationRepository) DeleteByLanguage(ctx context.Context, languageCode string) (int64, error) {
	var deleted int64

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*models.Translation)(nil)).
			Where("language_code = ?", languageCode).
			Exec(ctx)
		if err != nil {
			return err
		}
		deleted, _ = res.RowsAffected()

		_, err = tx.NewDelete().
			Model((*models.CategoryTranslation)(nil)).
			Where("language_code = ?", languageCode).
			Exec(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete translations for %s: %w", languageCode, err)
	}
	return deleted, nil
}

func deleteResult(op string, res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTranslationNotFound
	}
	return nil
}

func wrapTranslationErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTranslationNotFound) || errors.Is(err, ErrTranslationExists) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

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
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// CategoryRepository defines the interface for category data access.
// Menu items reference categories by name, so renames and deletes also touch
// menu_items in the same transaction.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	ListWithTranslations(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id int64, name string, order *int) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
	EnsureNames(ctx context.Context, names []string) (int, error)
}

// BunCategoryRepository implements CategoryRepository on top of Bun.
type BunCategoryRepository struct {
	db *bun.DB
}

// NewBunCategoryRepository creates a new Bun-backed category repository
func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return &BunCategoryRepository{db: db}
}

// List returns all categories in display order
func (r *BunCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.db.NewSelect().
		Model(&categories).
		Order("c.sort_order ASC", "c.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListWithTranslations returns all categories in display order with their translations
func (r *BunCategoryRepository) ListWithTranslations(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.db.NewSelect().
		Model(&categories).
		Relation("Translations", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("ct.language_code ASC")
		}).
		Order("c.sort_order ASC", "c.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("list categories with translations: %w", err)
	}
	return categories, nil
}

// GetByID returns a category by its ID
func (r *BunCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return getCategory(ctx, r.db, "c.id = ?", id)
}

// GetByName returns a category by its unique name
func (r *BunCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return getCategory(ctx, r.db, "c.name = ?", name)
}

// Create appends a new category after the current last one
func (r *BunCategoryRepository) Create(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.Category)(nil)).Where("name = ?", name).Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrCategoryExists
		}

		next, err := nextSortOrder(ctx, tx)
		if err != nil {
			return err
		}
		category.Order = next

		_, err = tx.NewInsert().Model(category).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, wrapCategoryErr("create category", err)
	}
	return category, nil
}

// Update renames a category (and optionally moves it). Menu items that
// referenced the old name are moved to the new one.
func (r *BunCategoryRepository) Update(ctx context.Context, id int64, name string, order *int) (*models.Category, error) {
	var updated *models.Category

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		category, err := getCategory(ctx, tx, "c.id = ?", id)
		if err != nil {
			return err
		}

		taken, err := tx.NewSelect().
			Model((*models.Category)(nil)).
			Where("name = ?", name).
			Where("id <> ?", id).
			Exists(ctx)
		if err != nil {
			return err
		}
		if taken {
			return ErrCategoryExists
		}

		oldName := category.Name
		category.Name = name
		if order != nil {
			category.Order = *order
		}

		if _, err := tx.NewUpdate().
			Model(category).
			Column("name", "sort_order").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}

		if oldName != name {
			if _, err := tx.NewUpdate().
				Model((*models.MenuItem)(nil)).
				Set("category = ?", name).
				Where("category = ?", oldName).
				Exec(ctx); err != nil {
				return err
			}
		}

		updated = category
		return nil
	})
	if err != nil {
		return nil, wrapCategoryErr("update category", err)
	}
	return updated, nil
}

// Delete removes a category and its translations. Menu items in the category
// become uncategorised.
func (r *BunCategoryRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		category, err := getCategory(ctx, tx, "c.id = ?", id)
		if err != nil {
			return err
		}

		if _, err := tx.NewUpdate().
			Model((*models.MenuItem)(nil)).
			Set("category = NULL").
			Where("category = ?", category.Name).
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			Model((*models.CategoryTranslation)(nil)).
			Where("category_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		_, err = tx.NewDelete().Model((*models.Category)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})
	return wrapCategoryErr("delete category", err)
}

// Reorder persists the given sequence positionally: the category at index i
// gets sort order i. Unknown ids are skipped.
func (r *BunCategoryRepository) Reorder(ctx context.Context, ids []int64) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for idx, id := range ids {
			if _, err := tx.NewUpdate().
				Model((*models.Category)(nil)).
				Set("sort_order = ?", idx).
				Where("id = ?", id).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	return nil
}

// EnsureNames creates the categories that do not exist yet, appended in the
// given order. It returns how many were created.
func (r *BunCategoryRepository) EnsureNames(ctx context.Context, names []string) (int, error) {
	created := 0

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		next, err := nextSortOrder(ctx, tx)
		if err != nil {
			return err
		}

		for _, name := range names {
			exists, err := tx.NewSelect().Model((*models.Category)(nil)).Where("name = ?", name).Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := tx.NewInsert().Model(&models.Category{Name: name, Order: next}).Exec(ctx); err != nil {
				return err
			}
			next++
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("ensure categories: %w", err)
	}
	return created, nil
}

func getCategory(ctx context.Context, db bun.IDB, where string, arg any) (*models.Category, error) {
	category := new(models.Category)
	if err := db.NewSelect().Model(category).Where(where, arg).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func nextSortOrder(ctx context.Context, db bun.IDB) (int, error) {
	var maxOrder sql.NullInt64
	if err := db.NewSelect().
		Model((*models.Category)(nil)).
		ColumnExpr("MAX(sort_order)").
		Scan(ctx, &maxOrder); err != nil {
		return 0, fmt.Errorf("max sort order: %w", err)
	}
	if !maxOrder.Valid {
		return 0, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

func wrapCategoryErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCategoryNotFound) || errors.Is(err, ErrCategoryExists) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

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
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// MenuItemRepository defines the interface for menu item data access
type MenuItemRepository interface {
	List(ctx context.Context, withTranslations bool) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id int64, withTranslations bool) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id int64) (*models.MenuItem, error)
}

// BunMenuItemRepository implements MenuItemRepository on top of Bun
type BunMenuItemRepository struct {
	db *bun.DB
}

// NewBunMenuItemRepository creates a new Bun-backed menu item repository
func NewBunMenuItemRepository(db *bun.DB) *BunMenuItemRepository {
	return &BunMenuItemRepository{db: db}
}

// List returns all menu items ordered by id
func (r *BunMenuItemRepository) List(ctx context.Context, withTranslations bool) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)
	q := r.db.NewSelect().Model(&items).Order("mi.id ASC")
	if withTranslations {
		q = q.Relation("Translations", orderTranslations)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// GetByID returns a menu item by its ID
func (r *BunMenuItemRepository) GetByID(ctx context.Context, id int64, withTranslations bool) (*models.MenuItem, error) {
	item := new(models.MenuItem)
	q := r.db.NewSelect().Model(item).Where("mi.id = ?", id)
	if withTranslations {
		q = q.Relation("Translations", orderTranslations)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

// Create inserts a new menu item and sets its ID
func (r *BunMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if _, err := r.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// Update overwrites every column of an existing menu item
func (r *BunMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	res, err := r.db.NewUpdate().Model(item).ExcludeColumn("id").WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// Delete removes a menu item and its translations, returning the deleted row
// so callers can clean up its image.
func (r *BunMenuItemRepository) Delete(ctx context.Context, id int64) (*models.MenuItem, error) {
	item := new(models.MenuItem)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(item).Where("mi.id = ?", id).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMenuItemNotFound
			}
			return err
		}
		if _, err := tx.NewDelete().
			Model((*models.Translation)(nil)).
			Where("menu_item_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*models.MenuItem)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrMenuItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete menu item: %w", err)
	}
	return item, nil
}

func orderTranslations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("t.language_code ASC")
}

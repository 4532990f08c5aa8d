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
	ErrRestaurantInfoNotFound = errors.New("restaurant info not found")
)

// RestaurantRepository stores the single restaurant profile
type RestaurantRepository interface {
	Get(ctx context.Context) (*models.RestaurantInfo, error)
	Save(ctx context.Context, input models.RestaurantInfoInput) (*models.RestaurantInfo, error)
}

// BunRestaurantRepository implements RestaurantRepository on top of Bun
type BunRestaurantRepository struct {
	db *bun.DB
}

// NewBunRestaurantRepository creates a new Bun-backed restaurant repository
func NewBunRestaurantRepository(db *bun.DB) *BunRestaurantRepository {
	return &BunRestaurantRepository{db: db}
}

// Get returns the stored profile
func (r *BunRestaurantRepository) Get(ctx context.Context) (*models.RestaurantInfo, error) {
	return firstRestaurant(ctx, r.db)
}

// Save creates the profile or overwrites the existing one
func (r *BunRestaurantRepository) Save(ctx context.Context, input models.RestaurantInfoInput) (*models.RestaurantInfo, error) {
	var saved *models.RestaurantInfo

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		info, err := firstRestaurant(ctx, tx)
		created := errors.Is(err, ErrRestaurantInfoNotFound)
		if err != nil && !created {
			return err
		}
		if created {
			info = &models.RestaurantInfo{}
		}

		info.Name = input.Name
		info.Description = input.Description
		info.Address = input.Address
		info.Phone = input.Phone
		info.Email = input.Email

		if created {
			_, err = tx.NewInsert().Model(info).Exec(ctx)
		} else {
			_, err = tx.NewUpdate().Model(info).ExcludeColumn("id").WherePK().Exec(ctx)
		}
		saved = info
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("save restaurant info: %w", err)
	}
	return saved, nil
}

func firstRestaurant(ctx context.Context, db bun.IDB) (*models.RestaurantInfo, error) {
	info := new(models.RestaurantInfo)
	if err := db.NewSelect().Model(info).Order("ri.id ASC").Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantInfoNotFound
		}
		return nil, fmt.Errorf("get restaurant info: %w", err)
	}
	return info, nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/menu-cms/internal/config"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*bun.DB, error) {
	var db *bun.DB

	switch cfg.Driver {
	case "sqlite", "sqlite3":
		sqldb, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY
		// and keeps shared in-memory databases alive.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case "postgres":
		sqldb, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, db *bun.DB) error {
	tables := []struct {
		model      any
		foreignKey string
	}{
		{model: (*models.RestaurantInfo)(nil)},
		{model: (*models.Category)(nil)},
		{model: (*models.MenuItem)(nil)},
		{
			model:      (*models.Translation)(nil),
			foreignKey: `("menu_item_id") REFERENCES "menu_items" ("id") ON DELETE CASCADE`,
		},
		{
			model:      (*models.CategoryTranslation)(nil),
			foreignKey: `("category_id") REFERENCES "categories" ("id") ON DELETE CASCADE`,
		},
	}

	for _, table := range tables {
		q := db.NewCreateTable().Model(table.model).IfNotExists()
		if table.foreignKey != "" {
			q = q.ForeignKey(table.foreignKey)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", table.model, err)
		}
	}

	indexes := []struct {
		model  any
		name   string
		column string
	}{
		{(*models.Category)(nil), "idx_categories_sort_order", "sort_order"},
		{(*models.MenuItem)(nil), "idx_menu_items_category", "category"},
		{(*models.Translation)(nil), "idx_translations_language_code", "language_code"},
		{(*models.CategoryTranslation)(nil), "idx_category_translations_language_code", "language_code"},
	}

	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.column).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}

	return nil
}

package database

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Lixing-Zhang/menu-cms/internal/config"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
)

func TestOpenAndMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := Open(ctx, config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:database_migrate_test?mode=memory&cache=shared&_fk=1",
	}, log)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Running twice must be harmless.
	for i := 0; i < 2; i++ {
		if err := Migrate(ctx, db); err != nil {
			t.Fatalf("Migrate() run %d error = %v", i+1, err)
		}
	}

	category := &models.Category{Name: "DESERT", Order: 0}
	if _, err := db.NewInsert().Model(category).Exec(ctx); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	if category.ID == 0 {
		t.Fatal("expected autoincrement id to be set")
	}

	duplicate := &models.Category{Name: "DESERT", Order: 1}
	if _, err := db.NewInsert().Model(duplicate).Exec(ctx); err == nil {
		t.Fatal("expected unique constraint violation on category name")
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "mysql", DSN: "x"}, log); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

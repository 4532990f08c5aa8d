package repository

import (
	"testing"

	"github.com/Lixing-Zhang/menu-cms/internal/database/dbtest"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	return dbtest.New(t)
}

func strPtr(s string) *string { return &s }

func categoryNames(categories []models.Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

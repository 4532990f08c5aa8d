package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// Category groups menu items. Menu items reference a category by name, so the
// name is unique across the system.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID           int64                 `bun:"id,pk,autoincrement" json:"id"`
	Name         string                `bun:"name,notnull,unique" json:"name"`
	Order        int                   `bun:"sort_order,notnull" json:"order"`
	Translations []CategoryTranslation `bun:"rel:has-many,join:id=category_id" json:"translations,omitempty"`
}

// CategoryInput is the body of category create and update requests.
type CategoryInput struct {
	Name  string `json:"name"`
	Order *int   `json:"order,omitempty"`
}

// Normalize trims surrounding whitespace from the name.
func (in *CategoryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

// Validate checks the category input.
func (in CategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&in.Order, validation.Min(0)),
	)
}

// CategoryList is the payload of GET /api/categories.
// Categories is kept for clients that only need the ordered names.
type CategoryList struct {
	Categories        []string   `json:"categories"`
	CategoriesWithIDs []Category `json:"categories_with_ids"`
}

// NewCategoryList builds the list payload from categories in server order.
func NewCategoryList(categories []Category) CategoryList {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	if categories == nil {
		categories = []Category{}
	}
	return CategoryList{Categories: names, CategoriesWithIDs: categories}
}

// PredefinedCategories are seeded into an empty database.
var PredefinedCategories = []string{
	"HLADNA PREDJELA",
	"TOPLA PREDJELA",
	"MESNA JELA S PRILOGOM",
	"RIBLJA JELA",
	"OBROČNE SALATE",
	"DESERT",
}

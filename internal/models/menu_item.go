package models

import (
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// MenuItem is a dish on the menu. Category holds the category name (nil when
// the item is uncategorised), not the category id.
type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items,alias:mi"`

	ID            int64   `bun:"id,pk,autoincrement" json:"id"`
	NameHR        string  `bun:"name_hr,notnull" json:"name_hr"`
	NameEN        string  `bun:"name_en,notnull" json:"name_en"`
	DescriptionHR *string `bun:"description_hr" json:"description_hr"`
	DescriptionEN *string `bun:"description_en" json:"description_en"`
	Price         float64 `bun:"price,notnull" json:"price"`
	ImagePath     *string `bun:"image_path" json:"image_path"`
	Category      *string `bun:"category" json:"category"`
	IsAvailable   bool    `bun:"is_available,notnull" json:"is_available"`

	IsVegetarian      bool `bun:"is_vegetarian,notnull" json:"is_vegetarian"`
	IsVegan           bool `bun:"is_vegan,notnull" json:"is_vegan"`
	ContainsGluten    bool `bun:"contains_gluten,notnull" json:"contains_gluten"`
	ContainsDairy     bool `bun:"contains_dairy,notnull" json:"contains_dairy"`
	ContainsNuts      bool `bun:"contains_nuts,notnull" json:"contains_nuts"`
	ContainsFish      bool `bun:"contains_fish,notnull" json:"contains_fish"`
	ContainsShellfish bool `bun:"contains_shellfish,notnull" json:"contains_shellfish"`
	ContainsEggs      bool `bun:"contains_eggs,notnull" json:"contains_eggs"`
	IsSpicy           bool `bun:"is_spicy,notnull" json:"is_spicy"`

	Translations []Translation `bun:"rel:has-many,join:id=menu_item_id" json:"translations,omitempty"`
}

// CategoryName returns the referenced category name, or "" when uncategorised.
func (m MenuItem) CategoryName() string {
	if m.Category == nil {
		return ""
	}
	return *m.Category
}

// MenuItemInput carries the form fields of menu item create/update requests.
// A nil field means "not provided" and leaves the stored value unchanged on
// update.
type MenuItemInput struct {
	NameHR        *string
	DescriptionHR *string
	Price         *float64
	Category      *string

	IsAvailable       *bool
	IsVegetarian      *bool
	IsVegan           *bool
	ContainsGluten    *bool
	ContainsDairy     *bool
	ContainsNuts      *bool
	ContainsFish      *bool
	ContainsShellfish *bool
	ContainsEggs      *bool
	IsSpicy           *bool
}

// ValidateCreate checks the input of a create request.
func (in MenuItemInput) ValidateCreate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.NameHR, validation.Required, validation.By(notBlank)),
		validation.Field(&in.Price, validation.NotNil, validation.By(finite), validation.Min(0.0)),
	)
}

// ValidateUpdate checks the input of an update request.
func (in MenuItemInput) ValidateUpdate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.NameHR, validation.NilOrNotEmpty, validation.By(notBlank)),
		validation.Field(&in.Price, validation.By(finite), validation.Min(0.0)),
	)
}

// Apply copies the provided fields onto item. The English fields mirror the
// Croatian ones.
func (in MenuItemInput) Apply(item *MenuItem) {
	if in.NameHR != nil {
		item.NameHR = *in.NameHR
		item.NameEN = *in.NameHR
	}
	if in.DescriptionHR != nil {
		desc := *in.DescriptionHR
		item.DescriptionHR = &desc
		item.DescriptionEN = &desc
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Category != nil {
		if name := strings.TrimSpace(*in.Category); name != "" {
			item.Category = &name
		} else {
			item.Category = nil
		}
	}

	setBool(&item.IsAvailable, in.IsAvailable)
	setBool(&item.IsVegetarian, in.IsVegetarian)
	setBool(&item.IsVegan, in.IsVegan)
	setBool(&item.ContainsGluten, in.ContainsGluten)
	setBool(&item.ContainsDairy, in.ContainsDairy)
	setBool(&item.ContainsNuts, in.ContainsNuts)
	setBool(&item.ContainsFish, in.ContainsFish)
	setBool(&item.ContainsShellfish, in.ContainsShellfish)
	setBool(&item.ContainsEggs, in.ContainsEggs)
	setBool(&item.IsSpicy, in.IsSpicy)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func notBlank(value any) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	if strings.TrimSpace(*s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// finite rejects NaN and infinities, which JSON cannot encode.
func finite(value any) error {
	f, ok := value.(*float64)
	if !ok || f == nil {
		return nil
	}
	if math.IsNaN(*f) || math.IsInf(*f, 0) {
		return validation.NewError("validation_finite", "must be a finite number")
	}
	return nil
}

// ParseFormBool interprets HTML form booleans: "true", "on" and "1" are true,
// anything else is false.
func ParseFormBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1":
		return true
	default:
		return false
	}
}

package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

// RestaurantInfo is the single restaurant profile shown on the public menu.
type RestaurantInfo struct {
	bun.BaseModel `bun:"table:restaurant_info,alias:ri"`

	ID          int64   `bun:"id,pk,autoincrement" json:"id"`
	Name        string  `bun:"name,notnull" json:"name"`
	Description *string `bun:"description" json:"description"`
	Address     *string `bun:"address" json:"address"`
	Phone       *string `bun:"phone" json:"phone"`
	Email       *string `bun:"email" json:"email"`
}

// DefaultRestaurantInfo is returned until the profile has been saved.
func DefaultRestaurantInfo() RestaurantInfo {
	empty := ""
	return RestaurantInfo{
		ID:          0,
		Name:        "Restaurant Menu",
		Description: &empty,
		Address:     &empty,
		Phone:       &empty,
		Email:       &empty,
	}
}

// RestaurantInfoInput is the body of POST /api/restaurant-info.
type RestaurantInfoInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
}

// Validate checks the restaurant profile input.
func (in RestaurantInfoInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Email, validation.When(in.Email != nil && strings.TrimSpace(*in.Email) != "", is.EmailFormat)),
	)
}

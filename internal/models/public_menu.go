package models

// PublicMenu is the read-only menu served to guests.
type PublicMenu struct {
	Language      string               `json:"language"`
	Restaurant    PublicRestaurant     `json:"restaurant"`
	Categories    []PublicMenuCategory `json:"categories"`
	Uncategorized []PublicMenuItem     `json:"uncategorized,omitempty"`
}

// PublicRestaurant is the restaurant header of the public menu.
type PublicRestaurant struct {
	Name            string `json:"name"`
	DescriptionHTML string `json:"description_html"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

// PublicMenuCategory is one category section of the public menu.
type PublicMenuCategory struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name"`
	Items []PublicMenuItem `json:"items"`
}

// PublicMenuItem is a localised, available dish.
type PublicMenuItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImagePath   string   `json:"image_path,omitempty"`
	Allergens   []string `json:"allergens"`
}

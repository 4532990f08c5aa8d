package models

// UncategorizedLabel is the analytics bucket for items without a known category.
const UncategorizedLabel = "Bez kategorije"

// AllergenCounts counts items per dietary flag.
type AllergenCounts struct {
	Vegetarian int `json:"vegetarian"`
	Vegan      int `json:"vegan"`
	Gluten     int `json:"gluten"`
	Dairy      int `json:"dairy"`
	Nuts       int `json:"nuts"`
	Fish       int `json:"fish"`
	Shellfish  int `json:"shellfish"`
	Eggs       int `json:"eggs"`
	Spicy      int `json:"spicy"`
}

// Analytics is the dashboard summary.
type Analytics struct {
	TotalItems       int            `json:"total_items"`
	AvailableItems   int            `json:"available_items"`
	UnavailableItems int            `json:"unavailable_items"`
	Categories       map[string]int `json:"categories"`
	AllergenCounts   AllergenCounts `json:"allergen_counts"`
	TotalCategories  int            `json:"total_categories"`
}

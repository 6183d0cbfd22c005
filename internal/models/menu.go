package models

import (
	"fmt"
	"strings"
)

// Category is the fixed menu category enumeration
type Category string

const (
	CategoryAppetizer Category = "APPETIZER"
	CategorySashimi   Category = "SASHIMI"
	CategoryGrilled   Category = "GRILLED"
	CategoryFried     Category = "FRIED"
	CategoryHotPot    Category = "HOT_POT"
	CategoryRice      Category = "RICE"
	CategoryNoodles   Category = "NOODLES"
	CategoryDessert   Category = "DESSERT"
	CategorySoftDrink Category = "SOFT_DRINK"
	CategoryAlcoholic Category = "ALCOHOLIC"
	CategoryBeer      Category = "BEER"
	CategorySake      Category = "SAKE"
	CategoryShochu    Category = "SHOCHU"
	CategoryWine      Category = "WINE"
	CategoryCocktail  Category = "COCKTAIL"
)

// Categories lists every valid menu category.
var Categories = []Category{
	CategoryAppetizer, CategorySashimi, CategoryGrilled, CategoryFried,
	CategoryHotPot, CategoryRice, CategoryNoodles, CategoryDessert,
	CategorySoftDrink, CategoryAlcoholic, CategoryBeer, CategorySake,
	CategoryShochu, CategoryWine, CategoryCocktail,
}

// ParseCategory normalizes a category string ("hot-pot", "HOT_POT", "HotPot"
// URL segments all map to the same value) and rejects unknown categories.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	c := Category(normalized)
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s", s)
}

// MenuItem represents a dish or drink on the menu.
// Prices are integer yen; the menu is read-only from the ordering side.
type MenuItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        Category `json:"category"`
	Price           int64    `json:"price"`
	PrepTimeMinutes int      `json:"preparationTimeMinutes,omitempty"`
	Available       bool     `json:"isAvailable"`
}

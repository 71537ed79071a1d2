package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/sufra-dev/sufra/models"
)

// The category set is a fixed reference set; ids are stable across backends.
const (
	CategoryMains      = "550e8400-e29b-41d4-a716-446655440000"
	CategoryStarters   = "550e8400-e29b-41d4-a716-446655440001"
	CategorySandwiches = "550e8400-e29b-41d4-a716-446655440002"
	CategorySalads     = "550e8400-e29b-41d4-a716-446655440003"
	CategoryDrinks     = "550e8400-e29b-41d4-a716-446655440004"
	CategoryDesserts   = "550e8400-e29b-41d4-a716-446655440005"
)

func seedCategories() []models.Category {
	return []models.Category{
		{ID: CategoryMains, Name: "Mains"},
		{ID: CategoryStarters, Name: "Starters"},
		{ID: CategorySandwiches, Name: "Sandwiches"},
		{ID: CategorySalads, Name: "Salads"},
		{ID: CategoryDrinks, Name: "Drinks"},
		{ID: CategoryDesserts, Name: "Desserts"},
	}
}

// seedMenu is the default menu written on the first read of an empty catalog.
func seedMenu() []models.MenuItem {
	return []models.MenuItem{
		{
			ID:          "1",
			Name:        "Mixed Grill",
			Description: "A selection of grilled meats with vegetables and rice",
			Price:       decimal.RequireFromString("25.99"),
			Image:       "https://images.pexels.com/photos/2641886/pexels-photo-2641886.jpeg",
			CategoryID:  CategoryMains,
			Featured:    true,
			Options: []models.OptionGroup{
				{
					Name: "Size",
					Choices: []models.OptionChoice{
						{Name: "Single"},
						{Name: "Double", Price: decimal.RequireFromString("20")},
						{Name: "Family", Price: decimal.RequireFromString("45")},
					},
				},
			},
		},
		{
			ID:          "2",
			Name:        "Hummus",
			Description: "Hummus with olive oil and pine nuts",
			Price:       decimal.RequireFromString("5.99"),
			Image:       "https://images.pexels.com/photos/1618898/pexels-photo-1618898.jpeg",
			CategoryID:  CategoryStarters,
		},
		{
			ID:          "3",
			Name:        "Chicken Shawarma",
			Description: "Chicken shawarma with garlic sauce and pickles",
			Price:       decimal.RequireFromString("8.99"),
			Image:       "https://images.pexels.com/photos/6542774/pexels-photo-6542774.jpeg",
			CategoryID:  CategorySandwiches,
			Featured:    true,
			Options: []models.OptionGroup{
				{
					Name: "Bread",
					Choices: []models.OptionChoice{
						{Name: "Saj"},
						{Name: "Samoon"},
					},
				},
				{
					Name: "Extras",
					Choices: []models.OptionChoice{
						{Name: "Fries", Price: decimal.RequireFromString("1")},
						{Name: "Cheese", Price: decimal.RequireFromString("0.5")},
					},
				},
			},
		},
		{
			ID:          "4",
			Name:        "Caesar Salad",
			Description: "Romaine lettuce with caesar dressing and grilled chicken",
			Price:       decimal.RequireFromString("7.99"),
			Image:       "https://images.pexels.com/photos/1211887/pexels-photo-1211887.jpeg",
			CategoryID:  CategorySalads,
		},
		{
			ID:          "5",
			Name:        "Fresh Orange Juice",
			Description: "100% natural orange juice",
			Price:       decimal.RequireFromString("3.99"),
			Image:       "https://images.pexels.com/photos/158053/fresh-orange-juice-squeezed-refreshing-citrus-158053.jpeg",
			CategoryID:  CategoryDrinks,
		},
		{
			ID:          "6",
			Name:        "Kunafa",
			Description: "Cheese kunafa with syrup",
			Price:       decimal.RequireFromString("6.99"),
			Image:       "https://images.pexels.com/photos/12664777/pexels-photo-12664777.jpeg",
			CategoryID:  CategoryDesserts,
			Featured:    true,
		},
	}
}

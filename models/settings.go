package models

import (
	"github.com/shopspring/decimal"
)

// SiteSettings is the singleton site-wide configuration record. Saves
// overwrite it wholesale; there is no partial merge.
type SiteSettings struct {
	RestaurantName string          `json:"restaurant_name"`
	HeroTitle      string          `json:"hero_title"`
	HeroSubtitle   string          `json:"hero_subtitle"`
	AboutText      string          `json:"about_text"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	WorkingHours   string          `json:"working_hours"`
	TaxNumber      string          `json:"tax_number"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
}

func DefaultSettings() SiteSettings {
	return SiteSettings{
		RestaurantName: "Sufra",
		HeroTitle:      "Delicious food, delivered to your door",
		HeroSubtitle:   "Enjoy the best dishes from our kitchen at home. Fast, easy and always tasty.",
		AboutText:      "We take pride in serving exceptional food and great service to our customers.",
		Address:        "123 Restaurant Street, Food City",
		Phone:          "+966 50 123 4567",
		WorkingHours:   "Sat-Thu: 11am - 10pm",
		TaxNumber:      "123456789",
		DeliveryFee:    decimal.Zero,
	}
}

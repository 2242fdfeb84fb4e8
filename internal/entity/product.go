package entity

import "time"

type Product struct {
	SKU      string `json:"sku"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	// Price in major currency units.
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	ImageURL string  `json:"imageUrl,omitempty"`
	// Short plain text description, at most 160 characters.
	Summary         string            `json:"summary"`
	DescriptionHTML string            `json:"descriptionHtml,omitempty"`
	Specs           map[string]string `json:"specs,omitempty"`
	// When the product appeared in the supplier catalog.
	AddedAt time.Time `json:"addedAt"`
}

// ProductFilter narrows down a product listing, empty fields match everything
type ProductFilter struct {
	Category string
	Query    string
}

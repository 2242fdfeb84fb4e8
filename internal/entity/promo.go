package entity

import "time"

// Promo is a discount code issued by the promo service
type Promo struct {
	Code            string    `json:"code"`
	DiscountPercent float64   `json:"discountPercent"`
	Description     string    `json:"description,omitempty"`
	ExpiresAt       time.Time `json:"expiresAt,omitzero"`
}

package rest

import (
	"context"

	"github.com/nDmitry/storefront/internal/entity"
)

// Catalog serves product listings
type Catalog interface {
	Products(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
}

// Generator renders product feeds
type Generator interface {
	Generate(products []entity.Product, params *entity.FeedParams) ([]byte, error)
}

// RatesProvider serves currency rates
type RatesProvider interface {
	Rates(ctx context.Context, base string) (entity.Rates, error)
}

// PromoProvider looks up promo codes
type PromoProvider interface {
	Lookup(ctx context.Context, code string) (entity.Promo, error)
}

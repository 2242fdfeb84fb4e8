package catalog

import (
	"context"
	"strings"

	"github.com/nDmitry/storefront/internal/cache"
	"github.com/nDmitry/storefront/internal/entity"
)

const productsKey = "catalog:products"

// Source provides the full product list
type Source interface {
	Scrape(ctx context.Context) ([]entity.Product, error)
}

// Service serves product listings, caching the scraped catalog for cache.TTLCatalog
type Service struct {
	source Source
	cache  cache.Typed[[]entity.Product]
}

func NewService(source Source, store *cache.Memory) *Service {
	return &Service{
		source: source,
		cache:  cache.NewTyped[[]entity.Product](store),
	}
}

// Products returns the products matching filter
func (s *Service) Products(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	all, err := s.cache.GetOrLoad(ctx, productsKey, cache.TTLCatalog, s.source.Scrape)

	if err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(all))

	for _, p := range all {
		if matches(p, filter) {
			products = append(products, p)
		}
	}

	return products, nil
}

// Invalidate drops the cached catalog so the next call scrapes again
func (s *Service) Invalidate() {
	s.cache.Delete(productsKey)
}

func matches(p entity.Product, filter entity.ProductFilter) bool {
	if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
		return false
	}

	if filter.Query == "" {
		return true
	}

	query := strings.ToLower(filter.Query)

	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Summary), query) ||
		strings.Contains(strings.ToLower(p.SKU), query)
}

package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nDmitry/storefront/internal/cache"
	"github.com/nDmitry/storefront/internal/catalog"
	"github.com/nDmitry/storefront/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockSource is a mock implementation of the Source interface
type MockSource struct {
	ScrapeFunc func(ctx context.Context) ([]entity.Product, error)
	Calls      int
}

func (m *MockSource) Scrape(ctx context.Context) ([]entity.Product, error) {
	m.Calls++
	return m.ScrapeFunc(ctx)
}

func TestService_Products(t *testing.T) {
	source := &MockSource{
		ScrapeFunc: func(_ context.Context) ([]entity.Product, error) {
			return testProducts, nil
		},
	}

	service := catalog.NewService(source, cache.NewMemory())

	tests := []struct {
		name         string
		filter       entity.ProductFilter
		expectedSKUs []string
	}{
		{name: "No filter", filter: entity.ProductFilter{}, expectedSKUs: []string{"PMP-100", "VLV-50", "PMP-200"}},
		{name: "Category", filter: entity.ProductFilter{Category: "PUMPS"}, expectedSKUs: []string{"PMP-100", "PMP-200"}},
		{name: "Query in title", filter: entity.ProductFilter{Query: "gate"}, expectedSKUs: []string{"VLV-50"}},
		{name: "Query in summary", filter: entity.ProductFilter{Query: "booster"}, expectedSKUs: []string{"PMP-200"}},
		{name: "Category and query", filter: entity.ProductFilter{Category: "Valves", Query: "pump"}, expectedSKUs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := service.Products(context.Background(), tt.filter)
			require.NoError(t, err)

			skus := make([]string, 0, len(products))

			for _, p := range products {
				skus = append(skus, p.SKU)
			}

			assert.Equal(t, tt.expectedSKUs, skus)
		})
	}

	assert.Equal(t, 1, source.Calls, "catalog must be scraped once and then served from cache")

	service.Invalidate()

	_, err := service.Products(context.Background(), entity.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, source.Calls)
}

func TestService_ProductsError(t *testing.T) {
	scrapeErr := errors.New("supplier is down")
	source := &MockSource{
		ScrapeFunc: func(_ context.Context) ([]entity.Product, error) {
			return nil, scrapeErr
		},
	}

	service := catalog.NewService(source, cache.NewMemory())

	_, err := service.Products(context.Background(), entity.ProductFilter{})
	require.ErrorIs(t, err, scrapeErr)
}

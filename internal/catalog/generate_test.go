package catalog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nDmitry/storefront/internal/catalog"
	"github.com/nDmitry/storefront/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProducts = []entity.Product{
	{
		SKU:      "PMP-100",
		Title:    "Pump PMP-100",
		URL:      "https://supplier.example/products/pmp-100",
		Category: "Pumps",
		ImageURL: "https://supplier.example/img/pmp-100.jpg",
		Summary:  "Reliable pump for clean water.",
		AddedAt:  time.Date(2025, 4, 28, 10, 0, 0, 0, time.UTC),
	},
	{
		SKU:      "VLV-50",
		Title:    "Gate valve DN50",
		URL:      "https://supplier.example/products/vlv-50",
		Category: "Valves",
		Summary:  "Cast iron gate valve.",
		AddedAt:  time.Date(2025, 4, 30, 10, 0, 0, 0, time.UTC),
	},
	{
		SKU:      "PMP-200",
		Title:    "Pump PMP-200",
		URL:      "https://supplier.example/products/pmp-200",
		Category: "Pumps",
		Summary:  "Booster pump.",
		AddedAt:  time.Date(2025, 4, 29, 10, 0, 0, 0, time.UTC),
	},
}

func TestGenerator_Generate(t *testing.T) {
	generator := &catalog.Generator{Link: "https://shop.example"}

	t.Run("RSS", func(t *testing.T) {
		content, err := generator.Generate(testProducts, &entity.FeedParams{Format: entity.FormatRSS, Limit: 10})
		require.NoError(t, err)

		feed := string(content)
		assert.Contains(t, feed, "<rss")
		assert.Contains(t, feed, "<title>New arrivals</title>")
		assert.Contains(t, feed, `<enclosure url="https://supplier.example/img/pmp-100.jpg" length="0" type="image/jpeg">`)

		// Newest first
		assert.Less(t, strings.Index(feed, "VLV-50"), strings.Index(feed, "PMP-200"))
		assert.Less(t, strings.Index(feed, "PMP-200"), strings.Index(feed, "PMP-100"))
	})

	t.Run("Atom with category and limit", func(t *testing.T) {
		content, err := generator.Generate(testProducts, &entity.FeedParams{Format: entity.FormatAtom, Category: "pumps", Limit: 1})
		require.NoError(t, err)

		feed := string(content)
		assert.Contains(t, feed, `<feed xmlns="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, feed, "New arrivals: pumps")
		assert.Contains(t, feed, "Pump PMP-200")
		assert.NotContains(t, feed, "Pump PMP-100")
		assert.NotContains(t, feed, "Gate valve")
	})

	t.Run("Unsupported format", func(t *testing.T) {
		_, err := generator.Generate(testProducts, &entity.FeedParams{Format: "json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported feed format: json")
	})
}

package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/nDmitry/storefront/internal/entity"
)

const (
	feedTitle       = "New arrivals"
	feedDescription = "Newest industrial equipment in the catalog"
)

// Generator renders product feeds
type Generator struct {
	// Link is the storefront URL used as the feed link
	Link string
}

// Generate creates a feed of the newest products and returns it as a byte array
func (g *Generator) Generate(products []entity.Product, params *entity.FeedParams) ([]byte, error) {
	feed := &feeds.Feed{
		Title:       feedTitle,
		Link:        &feeds.Link{Href: g.Link},
		Description: feedDescription,
	}

	if params.Category != "" {
		feed.Title = fmt.Sprintf("%s: %s", feedTitle, params.Category)
	}

	for _, p := range newest(products, params.Category, params.Limit) {
		item := &feeds.Item{
			Id:          p.SKU,
			Title:       p.Title,
			Link:        &feeds.Link{Href: p.URL},
			Description: p.Summary,
			Content:     p.DescriptionHTML,
			Created:     p.AddedAt,
		}

		if imageType := imageTypeFromURL(p.ImageURL); imageType != "" {
			item.Enclosure = &feeds.Enclosure{
				Url:    p.ImageURL,
				Type:   imageType,
				Length: "0",
			}
		}

		feed.Items = append(feed.Items, item)

		if feed.Created.IsZero() || p.AddedAt.After(feed.Created) {
			feed.Created = p.AddedAt
		}
	}

	var content string
	var err error

	switch params.Format {
	case entity.FormatRSS:
		content, err = feed.ToRss()
	case entity.FormatAtom:
		content, err = feed.ToAtom()
	default:
		return nil, fmt.Errorf("unsupported feed format: %s", params.Format)
	}

	if err != nil {
		return nil, fmt.Errorf("could not marshal products to %s feed: %w", params.Format, err)
	}

	return []byte(content), nil
}

// newest returns up to limit products of the category, newest first
func newest(products []entity.Product, category string, limit int) []entity.Product {
	selected := make([]entity.Product, 0, len(products))

	for _, p := range products {
		if category == "" || strings.EqualFold(p.Category, category) {
			selected = append(selected, p)
		}
	}

	slices.SortStableFunc(selected, func(a, b entity.Product) int {
		return b.AddedAt.Compare(a.AddedAt)
	})

	if limit > 0 && len(selected) > limit {
		selected = selected[:limit]
	}

	return selected
}

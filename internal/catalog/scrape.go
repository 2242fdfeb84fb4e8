package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/nDmitry/storefront/internal/app"
	"github.com/nDmitry/storefront/internal/entity"
	"github.com/nDmitry/storefront/internal/httperr"
)

const userAgent = "Mozilla/5.0 (compatible; StorefrontCatalogBot/1.0)"

// Scraper collects products from the supplier's HTML catalog.
// Pagination links (a[rel=next]) are followed up to maxPages.
type Scraper struct {
	catalogURL string
	domain     string
	timeout    time.Duration
	maxPages   int
	logger     *slog.Logger
}

// NewScraper creates a Scraper for the catalog page at catalogURL
func NewScraper(catalogURL string, timeout time.Duration) (*Scraper, error) {
	u, err := url.Parse(catalogURL)

	if err != nil {
		return nil, fmt.Errorf("invalid catalog URL %s: %w", catalogURL, err)
	}

	if u.Hostname() == "" {
		return nil, fmt.Errorf("invalid catalog URL %s: no host", catalogURL)
	}

	return &Scraper{
		catalogURL: catalogURL,
		domain:     u.Hostname(),
		timeout:    timeout,
		maxPages:   20,
		logger:     app.Logger(),
	}, nil
}

// Scrape visits the catalog and returns every product card found.
// Cards that cannot be parsed are logged and skipped. A failed page
// response is returned as *httperr.Error.
func (s *Scraper) Scrape(ctx context.Context) ([]entity.Product, error) {
	var (
		products []entity.Product
		visitErr error
		pages    int
	)

	c := colly.NewCollector(
		colly.AllowedDomains(s.domain),
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)

	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		pages++

		if pages > s.maxPages {
			r.Abort()
		}
	})

	c.OnHTML(".product-card", func(e *colly.HTMLElement) {
		product, err := extractProduct(e.DOM, e.Request.AbsoluteURL)

		if err != nil {
			s.logger.Warn("Skipping product card", "page", e.Request.URL.String(), "error", err)
			return
		}

		products = append(products, product)
	})

	c.OnHTML("a[rel=next]", func(e *colly.HTMLElement) {
		// Already visited pages and foreign domains end up here too
		if err := e.Request.Visit(e.Attr("href")); err != nil {
			s.logger.Debug("Not following catalog page", "href", e.Attr("href"), "error", err)
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		if visitErr != nil {
			return
		}

		if r != nil && r.StatusCode != 0 {
			visitErr = httperr.Normalize(r.StatusCode, r.Body, httperr.LanguageFrom(ctx))
			return
		}

		visitErr = fmt.Errorf("request error %s: %w", s.catalogURL, err)
	})

	if err := c.Visit(s.catalogURL); err != nil && visitErr == nil {
		return nil, fmt.Errorf("could not visit %s: %w", s.catalogURL, err)
	}

	if visitErr != nil {
		return nil, visitErr
	}

	s.logger.Info("Catalog scraped", "products", len(products), "pages", min(pages, s.maxPages))

	return products, nil
}

package catalog_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nDmitry/storefront/internal/catalog"
	"github.com/nDmitry/storefront/internal/httperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const firstPage = `<html><body>
<div class="product-card" data-sku="PMP-100">
	<a class="product-card__link" href="/products/pmp-100"><h3 class="product-card__title">Pump PMP-100</h3></a>
	<span class="product-card__category">Pumps</span>
	<span class="product-card__price">125 000 ₽</span>
	<time datetime="2025-04-28T10:00:00Z"></time>
</div>
<div class="product-card">
	<h3 class="product-card__title">Card without SKU is skipped</h3>
</div>
<a rel="next" href="/catalog?page=2">Next</a>
</body></html>`

const secondPage = `<html><body>
<div class="product-card" data-sku="VLV-50">
	<a class="product-card__link" href="/products/vlv-50"><h3 class="product-card__title">Gate valve DN50</h3></a>
	<span class="product-card__category">Valves</span>
	<span class="product-card__price">8 400 ₽</span>
	<time datetime="2025-04-30T10:00:00Z"></time>
</div>
</body></html>`

func TestScraper_Scrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, secondPage)
			return
		}

		fmt.Fprint(w, firstPage)
	}))
	defer srv.Close()

	scraper, err := catalog.NewScraper(srv.URL+"/catalog", 5*time.Second)
	require.NoError(t, err)

	products, err := scraper.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "PMP-100", products[0].SKU)
	assert.Equal(t, srv.URL+"/products/pmp-100", products[0].URL)
	assert.InDelta(t, 125000, products[0].Price, 0.001)

	assert.Equal(t, "VLV-50", products[1].SKU)
	assert.Equal(t, "Valves", products[1].Category)
}

func TestScraper_ScrapeErrorResponse(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{
			name:            "JSON message",
			status:          http.StatusServiceUnavailable,
			body:            `{"message":"Catalog is being updated"}`,
			expectedMessage: "Catalog is being updated",
		},
		{
			name:            "HTML error page",
			status:          http.StatusForbidden,
			body:            "<h1>Forbidden</h1>",
			expectedMessage: "доступ запрещён",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			scraper, err := catalog.NewScraper(srv.URL, 5*time.Second)
			require.NoError(t, err)

			ctx := httperr.WithLanguage(context.Background(), language.Russian)

			_, err = scraper.Scrape(ctx)

			var herr *httperr.Error
			require.ErrorAs(t, err, &herr)
			assert.Equal(t, tt.status, herr.Status)
			assert.Equal(t, tt.expectedMessage, herr.Message)
		})
	}
}

func TestScraper_ScrapeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	scraper, err := catalog.NewScraper(url, time.Second)
	require.NoError(t, err)

	_, err = scraper.Scrape(context.Background())
	require.Error(t, err)

	_, ok := httperr.StatusOf(err)
	assert.False(t, ok)
}

func TestNewScraper_InvalidURL(t *testing.T) {
	_, err := catalog.NewScraper("not a url", time.Second)
	assert.Error(t, err)
}

package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nDmitry/storefront/internal/app"
	"github.com/nDmitry/storefront/internal/cache"
	"github.com/nDmitry/storefront/internal/entity"
)

// ProductsHandler handles product listing and feed routes
type ProductsHandler struct {
	cache     cache.Cache
	catalog   Catalog
	generator Generator
	logger    *slog.Logger
}

// NewProductsHandler creates a new ProductsHandler and registers its routes on mux
func NewProductsHandler(mux *http.ServeMux, c cache.Cache, catalog Catalog, g Generator) *ProductsHandler {
	handler := &ProductsHandler{
		cache:     c,
		catalog:   catalog,
		generator: g,
		logger:    app.Logger(),
	}

	mux.HandleFunc("GET /api/products", handler.ListProducts)
	mux.HandleFunc("GET /api/products/feed", handler.GetFeed)

	return handler
}

// ListProducts responds with the products matching the category and q query parameters
func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Products(r.Context(), entity.NewProductFilterFromRequest(r))

	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}

// GetFeed handles requests for the new arrivals feed
func (h *ProductsHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	params, err := entity.NewFeedParamFromRequest(r)

	if err != nil {
		writeError(w, r, err)
		return
	}

	// Try to get from cache first if caching is enabled
	if params.CacheTTL > 0 {
		cachedContent, cacheErr := h.cache.Get(r.Context(), buildFeedCacheKey(params))

		if cacheErr == nil {
			w.Header().Set("X-CACHE-STATUS", "HIT")
			h.serveFeed(w, cachedContent, params.Format, params.CacheTTL)
			return
		} else if cacheErr != cache.ErrCacheMiss {
			// Real error, not just cache miss
			h.logger.Error("Cache error", "error", cacheErr)
		}
	}

	products, err := h.catalog.Products(r.Context(), entity.ProductFilter{Category: params.Category})

	if err != nil {
		writeError(w, r, err)
		return
	}

	content, err := h.generator.Generate(products, params)

	if err != nil {
		h.logger.Error("Feed generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if params.CacheTTL > 0 {
		cacheTTL := time.Duration(params.CacheTTL) * time.Minute

		// Use background context for caching to avoid cancellation
		cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.cache.Set(cacheCtx, buildFeedCacheKey(params), content, cacheTTL); err != nil {
			h.logger.Error("Failed to cache content", "error", err)
		}
	}

	w.Header().Set("X-CACHE-STATUS", "MISS")
	h.serveFeed(w, content, params.Format, params.CacheTTL)
}

// buildFeedCacheKey generates a cache key based on request parameters
func buildFeedCacheKey(params *entity.FeedParams) string {
	return fmt.Sprintf("products:feed:%s:%s:%d",
		params.Format,
		strings.ToLower(params.Category),
		params.Limit)
}

// serveFeed sends the feed to the client with appropriate headers
func (h *ProductsHandler) serveFeed(w http.ResponseWriter, content []byte, format string, cacheTTL int) {
	var contentType string
	switch format {
	case entity.FormatRSS:
		contentType = "application/rss+xml"
	case entity.FormatAtom:
		contentType = "application/atom+xml"
	default:
		contentType = "application/xml"
	}

	w.Header().Set("Content-Type", contentType+"; charset=utf-8")

	if cacheTTL > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheTTL*60))
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}

	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(content); err != nil {
		handleBadResponse(err, string(content))
	}
}

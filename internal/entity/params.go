package entity

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	FormatAtom = "atom"
	FormatRSS  = "rss"
)

const (
	CacheTTLDefault  = 5 // minutes
	FeedLimitDefault = 50
	FeedLimitMax     = 500
	CacheTTLMax      = 1440 // minutes
)

// FeedParams represents validated request parameters for product feed generation
type FeedParams struct {
	// Format is the feed format, either "atom" or "rss"
	Format string

	// Category limits the feed to one product category, empty means all
	Category string

	// Limit is the maximum number of newest products in the feed
	Limit int

	// CacheTTL is the cache time-to-live in minutes
	// A value of 0 means no caching
	CacheTTL int
}

// NewFeedParamFromRequest parses and validates request parameters and creates a new FeedParams
// nolint: cyclop
func NewFeedParamFromRequest(r *http.Request) (*FeedParams, error) {
	qp := r.URL.Query()

	format := qp.Get("format")

	if format == "" {
		format = FormatRSS
	} else if format != FormatRSS && format != FormatAtom {
		return nil, fmt.Errorf("%w: format must be %s or %s", ErrInvalidParam, FormatRSS, FormatAtom)
	}

	limit := FeedLimitDefault

	if limitStr := qp.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)

		if err != nil {
			return nil, fmt.Errorf("%w: limit must be a valid integer", ErrInvalidParam)
		}

		if limit <= 0 || limit > FeedLimitMax {
			return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParam, FeedLimitMax)
		}
	}

	// Parse cache TTL with default
	cacheTTL := CacheTTLDefault

	if ttlStr := qp.Get("cache_ttl"); ttlStr != "" {
		var err error
		cacheTTL, err = strconv.Atoi(ttlStr)

		if err != nil {
			return nil, fmt.Errorf("%w: cache_ttl must be a valid integer", ErrInvalidParam)
		}

		if cacheTTL < 0 {
			return nil, fmt.Errorf("%w: cache_ttl must be non-negative", ErrInvalidParam)
		}

		if cacheTTL > CacheTTLMax {
			return nil, fmt.Errorf("%w: cache_ttl must not exceed %d", ErrInvalidParam, CacheTTLMax)
		}
	}

	return &FeedParams{
		Format:   format,
		Category: strings.TrimSpace(qp.Get("category")),
		Limit:    limit,
		CacheTTL: cacheTTL,
	}, nil
}

// NewProductFilterFromRequest reads the listing filter from query parameters
func NewProductFilterFromRequest(r *http.Request) ProductFilter {
	qp := r.URL.Query()

	return ProductFilter{
		Category: strings.TrimSpace(qp.Get("category")),
		Query:    strings.TrimSpace(qp.Get("q")),
	}
}

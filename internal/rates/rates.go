package rates

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"regexp"
	"strings"

	"github.com/nDmitry/storefront/internal/cache"
	"github.com/nDmitry/storefront/internal/entity"
)

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Fetcher loads JSON documents from the rates API
type Fetcher interface {
	GetJSON(ctx context.Context, path string, out any) error
}

// Service serves currency rates, caching them for cache.TTLVolatile
type Service struct {
	fetcher Fetcher
	cache   cache.Typed[entity.Rates]
}

func NewService(f Fetcher, store *cache.Memory) *Service {
	return &Service{
		fetcher: f,
		cache:   cache.NewTyped[entity.Rates](store),
	}
}

// Rates returns the rates for a base currency code such as "USD".
// The returned map is a copy, callers may modify it.
func (s *Service) Rates(ctx context.Context, base string) (entity.Rates, error) {
	base = strings.ToUpper(strings.TrimSpace(base))

	if !currencyRe.MatchString(base) {
		return entity.Rates{}, fmt.Errorf("%w: base must be a 3-letter currency code", entity.ErrInvalidParam)
	}

	rates, err := s.cache.GetOrLoad(ctx, "rates:"+base, cache.TTLVolatile, func(ctx context.Context) (entity.Rates, error) {
		var rates entity.Rates

		if err := s.fetcher.GetJSON(ctx, "/rates?base="+url.QueryEscape(base), &rates); err != nil {
			return entity.Rates{}, fmt.Errorf("could not load %s rates: %w", base, err)
		}

		if rates.Base == "" {
			rates.Base = base
		}

		return rates, nil
	})

	if err != nil {
		return entity.Rates{}, err
	}

	rates.Rates = maps.Clone(rates.Rates)

	return rates, nil
}

package promo

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/nDmitry/storefront/internal/cache"
	"github.com/nDmitry/storefront/internal/entity"
)

var codeRe = regexp.MustCompile(`^[A-Z0-9-]{3,32}$`)

// Fetcher loads JSON documents from the promo API
type Fetcher interface {
	GetJSON(ctx context.Context, path string, out any) error
}

// Service looks up promo codes, caching them for cache.TTLPromo
type Service struct {
	fetcher Fetcher
	cache   cache.Typed[entity.Promo]
	now     func() time.Time
}

func NewService(f Fetcher, store *cache.Memory) *Service {
	return &Service{
		fetcher: f,
		cache:   cache.NewTyped[entity.Promo](store),
		now:     time.Now,
	}
}

// Lookup returns the promo for code. Codes are case-insensitive.
// A promo past its expiration is reported as entity.ErrGone.
func (s *Service) Lookup(ctx context.Context, code string) (entity.Promo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if !codeRe.MatchString(code) {
		return entity.Promo{}, fmt.Errorf("%w: promo code must be 3 to 32 letters, digits or dashes", entity.ErrInvalidParam)
	}

	promo, err := s.cache.GetOrLoad(ctx, "promo:"+code, cache.TTLPromo, func(ctx context.Context) (entity.Promo, error) {
		var promo entity.Promo

		if err := s.fetcher.GetJSON(ctx, "/promo/"+url.PathEscape(code), &promo); err != nil {
			return entity.Promo{}, fmt.Errorf("could not load promo %s: %w", code, err)
		}

		promo.Code = code

		return promo, nil
	})

	if err != nil {
		return entity.Promo{}, err
	}

	if !promo.ExpiresAt.IsZero() && !s.now().Before(promo.ExpiresAt) {
		return entity.Promo{}, fmt.Errorf("%w: promo code %s has expired", entity.ErrGone, code)
	}

	return promo, nil
}

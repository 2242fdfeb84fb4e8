package promo_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/nDmitry/storefront/internal/cache"
	"github.com/nDmitry/storefront/internal/entity"
	"github.com/nDmitry/storefront/internal/httperr"
	"github.com/nDmitry/storefront/internal/promo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// MockFetcher is a mock implementation of the Fetcher interface
type MockFetcher struct {
	GetJSONFunc func(ctx context.Context, path string, out any) error
	Calls       int
}

func (m *MockFetcher) GetJSON(ctx context.Context, path string, out any) error {
	m.Calls++
	return m.GetJSONFunc(ctx, path, out)
}

var now = time.Date(2025, 4, 30, 7, 27, 0, 0, time.UTC)

func TestService_Lookup(t *testing.T) {
	tests := []struct {
		name          string
		code          string
		promo         entity.Promo
		fetchErr      error
		expectedPath  string
		expected      entity.Promo
		expectedError error
	}{
		{
			name:         "Valid code",
			code:         "spring-25",
			promo:        entity.Promo{DiscountPercent: 25, ExpiresAt: now.Add(time.Hour)},
			expectedPath: "/promo/SPRING-25",
			expected:     entity.Promo{Code: "SPRING-25", DiscountPercent: 25, ExpiresAt: now.Add(time.Hour)},
		},
		{
			name:         "Code without expiration",
			code:         "FOREVER",
			promo:        entity.Promo{DiscountPercent: 5},
			expectedPath: "/promo/FOREVER",
			expected:     entity.Promo{Code: "FOREVER", DiscountPercent: 5},
		},
		{
			name:          "Expired code",
			code:          "WINTER",
			promo:         entity.Promo{DiscountPercent: 10, ExpiresAt: now.Add(-time.Minute)},
			expectedPath:  "/promo/WINTER",
			expectedError: entity.ErrGone,
		},
		{
			name:          "Invalid code",
			code:          "a!",
			expectedError: entity.ErrInvalidParam,
		},
		{
			name:          "Unknown code",
			code:          "NOPE",
			fetchErr:      httperr.Normalize(http.StatusNotFound, nil, language.English),
			expectedPath:  "/promo/NOPE",
			expectedError: &httperr.Error{Message: "resource not found", Status: http.StatusNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &MockFetcher{
				GetJSONFunc: func(_ context.Context, path string, out any) error {
					assert.Equal(t, tt.expectedPath, path)

					if tt.fetchErr != nil {
						return tt.fetchErr
					}

					*out.(*entity.Promo) = tt.promo

					return nil
				},
			}

			service := promo.NewService(fetcher, cache.NewMemory())
			service.SetClock(func() time.Time { return now })

			got, err := service.Lookup(context.Background(), tt.code)

			if tt.expectedError != nil {
				require.Error(t, err)

				if herr, ok := tt.expectedError.(*httperr.Error); ok {
					status, ok := httperr.StatusOf(err)
					require.True(t, ok)
					assert.Equal(t, herr.Status, status)
				} else {
					assert.ErrorIs(t, err, tt.expectedError)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestService_LookupCached(t *testing.T) {
	fetcher := &MockFetcher{
		GetJSONFunc: func(_ context.Context, _ string, out any) error {
			*out.(*entity.Promo) = entity.Promo{DiscountPercent: 15}
			return nil
		},
	}

	service := promo.NewService(fetcher, cache.NewMemory())

	for range 3 {
		_, err := service.Lookup(context.Background(), "summer")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, fetcher.Calls)
}

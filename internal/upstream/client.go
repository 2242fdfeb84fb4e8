package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nDmitry/storefront/internal/app"
	"github.com/nDmitry/storefront/internal/httperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var upstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_upstream_errors_total",
	Help: "Total number of failed upstream responses by status",
}, []string{"status"})

// Client calls a JSON HTTP API. Non-2xx responses come back as *httperr.Error.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the API at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(timeout),
		logger:  app.Logger(),
	}
}

// GetJSON requests path and decodes a successful JSON response into out.
// Failed responses are normalized in the language stored in ctx.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return fmt.Errorf("could not create request %s: %w", url, err)
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)

	if err != nil {
		return fmt.Errorf("could not request %s: %w", url, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		herr := httperr.FromResponse(res, httperr.LanguageFrom(ctx))
		upstreamErrors.WithLabelValues(strconv.Itoa(herr.Status)).Inc()

		c.logger.Warn("Upstream request failed",
			"url", url,
			"status", herr.Status,
			"message", herr.Message)

		return herr
	}

	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response from %s: %w", url, err)
	}

	return nil
}

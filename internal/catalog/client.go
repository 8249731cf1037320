package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Client fetches products from a dummyjson-style catalog API.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	limit   int
	logger  *slog.Logger
}

// Options configures the catalog client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Limit   int // max products to request per fetch
}

// NewClient builds a catalog client with retry and timeout behavior.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = nil // quiet; we log the outcome ourselves

	return &Client{
		http:    rc,
		baseURL: opts.BaseURL,
		limit:   opts.Limit,
		logger:  logger,
	}
}

// productsResponse is the catalog service's list envelope.
type productsResponse struct {
	Products []Entry `json:"products"`
	Total    int     `json:"total"`
}

// FetchProducts retrieves the product list. On any failure it logs a
// warning and returns nil so enrichment degrades to all-unmatched
// instead of failing the run.
func (c *Client) FetchProducts(ctx context.Context) []Entry {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("catalog request could not be built", "url", url, "error", err)
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("catalog unavailable, continuing without enrichment data", "url", url, "error", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog returned unexpected status", "url", url, "status", resp.StatusCode)
		return nil
	}

	var decoded productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Warn("catalog response could not be decoded", "url", url, "error", err)
		return nil
	}

	c.logger.Info("fetched product catalog", "products", len(decoded.Products))
	return decoded.Products
}

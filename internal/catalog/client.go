// Package catalog is the HTTP client for the product catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"toyshop/internal/domain"
)

// Client fetches products from the catalog service. Cart line snapshots are
// built from its responses at add time.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetByID fetches one product. A 404 maps to domain.ErrNotFound.
func (c *Client) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return c.get(ctx, fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(id)))
}

// GetBySlug fetches one product by its URL slug.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return c.get(ctx, fmt.Sprintf("%s/products/slug/%s", c.baseURL, url.PathEscape(slug)))
}

func (c *Client) get(ctx context.Context, rawURL string) (*domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog responded %d", resp.StatusCode)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return &product, nil
}

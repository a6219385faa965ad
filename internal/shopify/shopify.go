// Package shopify fetches orders from the commerce platform's admin REST
// API and converts them to typed records at the boundary.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

const (
	apiVersion = "2024-01"
	// ordersLimit is the maximum batch the admin API returns per call; the
	// pipeline works on this single most-recent window and never paginates.
	ordersLimit = "250"

	defaultTimeout = 10 * time.Second
)

// Config holds the store credentials.
type Config struct {
	StoreDomain string        `mapstructure:"store_domain"` // e.g. acme.myshopify.com
	AccessToken string        `mapstructure:"access_token"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// BaseURL overrides the https://<store_domain> admin endpoint.
	BaseURL string `mapstructure:"base_url"`
}

// Client is the order source backed by the admin API.
type Client struct {
	c   *Config
	cli *resty.Client
}

// New builds a client for one store.
func New(c *Config) *Client {
	timeout := c.HTTPTimeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	base := c.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s", c.StoreDomain)
	}

	cli := resty.New()
	cli.SetBaseURL(fmt.Sprintf("%s/admin/api/%s", base, apiVersion))
	cli.SetHeader("X-Shopify-Access-Token", c.AccessToken)
	cli.SetTimeout(timeout)

	return &Client{c: c, cli: cli}
}

// Orders fetches the most recent orders of any status.
func (c *Client) Orders(ctx context.Context) ([]entity.Order, error) {
	resp, err := c.cli.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"status": "any",
			"limit":  ordersLimit,
		}).
		Get("/orders.json")
	if err != nil {
		return nil, fmt.Errorf("could not fetch orders: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return nil, fmt.Errorf("store not authorized: %s", resp.Status())
	}
	if resp.IsError() {
		return nil, fmt.Errorf("orders request failed: %s: %s", resp.Status(), resp.String())
	}

	var res ordersResponse
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return nil, fmt.Errorf("could not unmarshal orders response: %w", err)
	}

	orders := make([]entity.Order, 0, len(res.Orders))
	for i := range res.Orders {
		orders = append(orders, res.Orders[i].toEntity())
	}
	return orders, nil
}

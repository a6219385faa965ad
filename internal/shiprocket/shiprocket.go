// Package shiprocket fetches shipment states from the logistics provider
// and maps its raw status codes onto the coarse classification the pipeline
// uses.
package shiprocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/skupulse/skupulse-manager/internal/dependency"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

const (
	defaultBaseURL = "https://apiv2.shiprocket.in"
	defaultTimeout = 10 * time.Second

	// shipmentsLimit is the single page the pipeline consumes per request.
	shipmentsLimit = "500"
)

// Config holds the provider account credentials.
type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	Email       string        `mapstructure:"email"`
	Password    string        `mapstructure:"password"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

func newRestyClient(c *Config) *resty.Client {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := c.HTTPTimeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cli := resty.New()
	cli.SetBaseURL(base)
	cli.SetTimeout(timeout)
	return cli
}

// Client is the shipment-status source.
type Client struct {
	cli    *resty.Client
	tokens dependency.TokenProvider
}

// New builds a client with its own cached token source.
func New(c *Config) *Client {
	return NewWithTokenProvider(c, NewTokenSource(c))
}

// NewWithTokenProvider builds a client over an externally owned token
// provider.
func NewWithTokenProvider(c *Config, tokens dependency.TokenProvider) *Client {
	return &Client{cli: newRestyClient(c), tokens: tokens}
}

// Shipments fetches current shipment states for activity inside [from, to].
// Statuses reflect provider state at call time, not at the requested dates.
func (c *Client) Shipments(ctx context.Context, from, to time.Time) ([]entity.ShipmentRecord, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get session token: %w", err)
	}

	resp, err := c.cli.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"per_page": shipmentsLimit,
			"from":     from.Format("2006-01-02"),
			"to":       to.Format("2006-01-02"),
		}).
		Get("/v1/external/shipments")
	if err != nil {
		return nil, fmt.Errorf("could not fetch shipments: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("shipments request failed: %s: %s", resp.Status(), resp.String())
	}

	var res shipmentsResponse
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return nil, fmt.Errorf("could not unmarshal shipments response: %w", err)
	}

	records := make([]entity.ShipmentRecord, 0, len(res.Data))
	for i := range res.Data {
		records = append(records, res.Data[i].toEntity())
	}
	return records, nil
}

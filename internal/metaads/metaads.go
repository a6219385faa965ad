// Package metaads fetches per-campaign ad spend from the ad platform's
// insights API.
package metaads

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL    = "https://graph.facebook.com"
	defaultAPIVersion = "v19.0"
	defaultTimeout    = 10 * time.Second
)

// Config holds the ad account credentials.
type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIVersion  string        `mapstructure:"api_version"`
	AdAccountID string        `mapstructure:"ad_account_id"`
	AccessToken string        `mapstructure:"access_token"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Client is the ad-spend source.
type Client struct {
	c   *Config
	cli *resty.Client
}

// New builds a client for one ad account.
func New(c *Config) *Client {
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

	return &Client{c: c, cli: cli}
}

type insightsResponse struct {
	Data []campaignInsight `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

type campaignInsight struct {
	CampaignName string `json:"campaign_name"`
	Spend        string `json:"spend"`
}

// CampaignSpend returns total spend per campaign display name for the date
// range, following paging cursors. Campaigns with unparsable spend count as
// zero.
func (c *Client) CampaignSpend(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	version := c.c.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}

	spend := make(map[string]decimal.Decimal)

	req := c.cli.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"level":        "campaign",
			"fields":       "campaign_name,spend",
			"time_range":   fmt.Sprintf(`{"since":"%s","until":"%s"}`, from.Format("2006-01-02"), to.Format("2006-01-02")),
			"access_token": c.c.AccessToken,
		})
	next := fmt.Sprintf("/%s/act_%s/insights", version, c.c.AdAccountID)

	for next != "" {
		resp, err := req.Get(next)
		if err != nil {
			return nil, fmt.Errorf("could not fetch insights: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("insights request failed: %s: %s", resp.Status(), resp.String())
		}

		var res insightsResponse
		if err := json.Unmarshal(resp.Body(), &res); err != nil {
			return nil, fmt.Errorf("could not unmarshal insights response: %w", err)
		}

		for _, row := range res.Data {
			if row.CampaignName == "" {
				continue
			}
			amount, err := decimal.NewFromString(row.Spend)
			if err != nil {
				amount = decimal.Zero
			}
			spend[row.CampaignName] = spend[row.CampaignName].Add(amount)
		}

		next = res.Paging.Next
		// Cursor URLs are absolute and already carry the query string.
		req = c.cli.R().SetContext(ctx)
	}

	return spend, nil
}

package shiprocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// Provider session tokens stay valid for ten days; refresh an hour
	// before expiry so in-flight requests never race the cutoff.
	tokenTTL      = 240 * time.Hour
	refreshMargin = time.Hour
)

// TokenSource exchanges API credentials for a session token and caches it
// until shortly before expiry. It is safe for concurrent use.
type TokenSource struct {
	c   *Config
	cli *resty.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenSource builds the token provider for one account.
func NewTokenSource(c *Config) *TokenSource {
	return &TokenSource{c: c, cli: newRestyClient(c)}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Token returns a valid session token, logging in again when the cached one
// is missing or about to expire.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Now().Before(t.expiry.Add(-refreshMargin)) {
		return t.token, nil
	}

	resp, err := t.cli.R().
		SetContext(ctx).
		SetBody(loginRequest{Email: t.c.Email, Password: t.c.Password}).
		Post("/v1/external/auth/login")
	if err != nil {
		return "", fmt.Errorf("could not log in: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("login failed: %s: %s", resp.Status(), resp.String())
	}

	var res loginResponse
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return "", fmt.Errorf("could not unmarshal login response: %w", err)
	}
	if res.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}

	t.token = res.Token
	t.expiry = time.Now().Add(tokenTTL)
	return t.token, nil
}

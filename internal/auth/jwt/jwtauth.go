package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// Config holds the API token settings.
type Config struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// NewAuth builds the HS256 verifier/signer used by the API router and the
// token subcommand.
func NewAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// NewToken mints a bearer token for the analytics API. Subject names the
// consumer for audit logs; empty is allowed.
func NewToken(auth *jwtauth.JWTAuth, ttl time.Duration, subject string) (string, error) {
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
	}
	if subject != "" {
		claims["sub"] = subject
	}
	_, ts, err := auth.Encode(claims)
	return ts, err
}

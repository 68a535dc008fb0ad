package firesdk

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims the API puts in its access tokens.
type AccessClaims struct {
	jwt.RegisteredClaims

	// TokenType is "access" for access tokens and "refresh" for refresh tokens
	TokenType string `json:"token_type,omitempty"`

	// UserID is the member's primary key
	UserID FlexString `json:"user_id,omitempty"`
}

// ParseAccessClaims decodes token claims WITHOUT verifying the signature.
// The client holds no signing key; the result is only good for display and
// for deciding whether a stored token is already stale.
func ParseAccessClaims(token string) (*AccessClaims, error) {
	if token == "" {
		return nil, errors.New("firesdk: empty token")
	}

	var claims AccessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("firesdk: failed to parse token claims: %w", err)
	}
	return &claims, nil
}

// ExpiresWithin reports whether the token expires within d of now. Tokens
// without an exp claim never expire.
func (c *AccessClaims) ExpiresWithin(d time.Duration, now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Add(d).Before(c.ExpiresAt.Time)
}

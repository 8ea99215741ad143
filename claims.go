package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A token parsed under the wrong expected purpose fails
// validation with ErrWrongTokenPurpose.
const (
	SubjectAccessToken  = "access_token"
	SubjectRefreshToken = "refresh_token"
)

// TokenClaims is the signed payload carried by every issued token. Claims
// are built once at issuance and never mutated after signing; a new claim
// set requires a new signature.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
	// RefreshToken is a refresh token nested inside an access token's
	// claims, created once at issuance and carried unchanged until the
	// access token expires.
	RefreshToken string `json:"refresh_token,omitempty"`
	// Extensions carries claims outside the core vocabulary (for example
	// upstream provider tokens). Pass-through, never interpreted here.
	Extensions map[string]string `json:"ext,omitempty"`
}

// Subject returns the token purpose claim
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// IsAccessToken reports whether the claims describe an access token
func (c *TokenClaims) IsAccessToken() bool {
	return c.Subject() == SubjectAccessToken
}

// IsRefreshToken reports whether the claims describe a refresh token
func (c *TokenClaims) IsRefreshToken() bool {
	return c.Subject() == SubjectRefreshToken
}

// Expires returns the absolute expiry time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issuance time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// Extension returns a pass-through claim by key
func (c *TokenClaims) Extension(key string) (string, bool) {
	if c.Extensions == nil {
		return "", false
	}
	val, ok := c.Extensions[key]
	return val, ok
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthToken is the identity server's client-credentials grant response.
type AuthToken struct {
	AccessToken    string `json:"access_token"`
	ExpiresIn      int64  `json:"expires_in"`
	TokenType      string `json:"token_type"`
	Scope          string `json:"scope"`
	OrganizationID string `json:"organizationId"`
	PersonID       string `json:"personId"`

	expiresAt time.Time
}

// ResolveExpiry pins the token's expiry instant. The access token is a JWT,
// so the exp claim is authoritative when readable; otherwise fall back to
// now + expires_in.
func (t *AuthToken) ResolveExpiry(now time.Time) {
	t.expiresAt = now.Add(time.Duration(t.ExpiresIn) * time.Second)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	t.expiresAt = exp.Time
}

// Expired reports whether the token is past its expiry.
func (t *AuthToken) Expired(now time.Time) bool {
	return !t.expiresAt.IsZero() && now.After(t.expiresAt)
}

// ExpiresAt exposes the resolved expiry instant.
func (t *AuthToken) ExpiresAt() time.Time { return t.expiresAt }

package domain

import "time"

// Token is a bearer or refresh token with its absolute expiry.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// Credentials is the bundle returned by login or verification and persisted
// between runs.
type Credentials struct {
	AccessToken  Token  `json:"access_token"`
	RefreshToken Token  `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

// Valid reports whether both token values are present.
func (c *Credentials) Valid() bool {
	return c != nil && c.AccessToken.Value != "" && c.RefreshToken.Value != ""
}

// AccessExpired reports whether the access token can no longer be used.
func (c *Credentials) AccessExpired(now time.Time) bool {
	return c == nil || c.AccessToken.Expired(now)
}

package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// ExpirySafetyMargin is subtracted from relative token lifetimes so a token
// is treated as expired slightly before the server does.
const ExpirySafetyMargin = 5 * time.Second

// absoluteTime accepts epoch seconds (string or number) or an RFC 3339
// timestamp.
type absoluteTime struct {
	time.Time
}

func (a *absoluteTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		return nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		a.Time = time.Unix(secs, 0).UTC()
		return nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		a.Time = time.Unix(0, int64(secs*float64(time.Second))).UTC()
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid expiry %q", s)
	}
	a.Time = t.UTC()
	return nil
}

type tokenWire struct {
	Token     string        `json:"token"`
	ExpiresIn *json.Number  `json:"expires_in"`
	ExpiresAt *absoluteTime `json:"expires_at"`
}

type credentialsWire struct {
	AccessToken  *tokenWire  `json:"access_token"`
	RefreshToken *tokenWire  `json:"refresh_token"`
	UserID       *flexString `json:"user_id"`
}

// HasTokens reports whether raw carries both token objects with values. It
// does not validate expiries.
func HasTokens(raw json.RawMessage) bool {
	var w credentialsWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return false
	}
	return w.AccessToken != nil && w.AccessToken.Token != "" &&
		w.RefreshToken != nil && w.RefreshToken.Token != ""
}

// Credentials maps a login or verification response to a credential bundle,
// deriving absolute expiries at now. An expiry already supplied by the server
// is kept; otherwise expires_in is applied less ExpirySafetyMargin, and as a
// last resort the exp claim of a JWT token is used.
func Credentials(raw json.RawMessage, now time.Time) (*domain.Credentials, error) {
	const op = "mapper.Credentials"

	var w credentialsWire
	if err := decode(op, raw, &w); err != nil {
		return nil, err
	}
	if w.AccessToken == nil || w.AccessToken.Token == "" {
		return nil, missing(op, "access_token")
	}
	if w.RefreshToken == nil || w.RefreshToken.Token == "" {
		return nil, missing(op, "refresh_token")
	}

	access, err := token(w.AccessToken, now)
	if err != nil {
		return nil, fmt.Errorf("%s: access_token: %w", op, err)
	}
	refresh, err := token(w.RefreshToken, now)
	if err != nil {
		return nil, fmt.Errorf("%s: refresh_token: %w", op, err)
	}

	creds := &domain.Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
	}
	if w.UserID != nil {
		creds.UserID = string(*w.UserID)
	}
	if creds.UserID == "" {
		creds.UserID = tokenSubject(access.Value)
	}

	return creds, nil
}

func token(w *tokenWire, now time.Time) (domain.Token, error) {
	t := domain.Token{Value: w.Token}

	switch {
	case w.ExpiresAt != nil && !w.ExpiresAt.IsZero():
		t.ExpiresAt = w.ExpiresAt.Time
	case w.ExpiresIn != nil && *w.ExpiresIn != "":
		secs, err := w.ExpiresIn.Float64()
		if err != nil {
			return domain.Token{}, fmt.Errorf("expires_in %q: %w", *w.ExpiresIn, err)
		}
		lifetime := time.Duration(secs * float64(time.Second))
		t.ExpiresAt = now.Add(lifetime - ExpirySafetyMargin).UTC()
	default:
		exp, ok := tokenExpiry(w.Token)
		if !ok {
			return domain.Token{}, domain.ErrMissingExpiry
		}
		t.ExpiresAt = exp
	}

	return t, nil
}

func tokenClaims(value string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func tokenExpiry(value string) (time.Time, bool) {
	claims, ok := tokenClaims(value)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time.UTC(), true
}

func tokenSubject(value string) string {
	claims, ok := tokenClaims(value)
	if !ok {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

package mapper_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/mapper"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestCredentials_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	jwtExp := now.Add(2 * time.Hour).Truncate(time.Second)

	tests := []struct {
		name        string
		body        string
		wantAccess  time.Time
		wantRefresh time.Time
		wantUserID  string
		wantErr     error
	}{
		{
			name:        "relative lifetimes",
			body:        `{"access_token": {"token": "a", "expires_in": 3600}, "refresh_token": {"token": "r", "expires_in": "86400"}, "user_id": 42}`,
			wantAccess:  now.Add(time.Hour - mapper.ExpirySafetyMargin),
			wantRefresh: now.Add(24*time.Hour - mapper.ExpirySafetyMargin),
			wantUserID:  "42",
		},
		{
			name:        "absolute expiries are kept",
			body:        `{"access_token": {"token": "a", "expires_at": 1714568400}, "refresh_token": {"token": "r", "expires_at": "2024-06-01T00:00:00Z"}, "user_id": "42"}`,
			wantAccess:  time.Unix(1714568400, 0).UTC(),
			wantRefresh: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			wantUserID:  "42",
		},
		{
			name:    "missing refresh token",
			body:    `{"access_token": {"token": "a", "expires_in": 3600}}`,
			wantErr: mapper.ErrMissingField,
		},
		{
			name:    "no derivable expiry",
			body:    `{"access_token": {"token": "opaque"}, "refresh_token": {"token": "r", "expires_in": 60}}`,
			wantErr: domain.ErrMissingExpiry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := mapper.Credentials(json.RawMessage(tt.body), now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, creds.Valid())
			assert.True(t, tt.wantAccess.Equal(creds.AccessToken.ExpiresAt), "access expiry %s", creds.AccessToken.ExpiresAt)
			assert.True(t, tt.wantRefresh.Equal(creds.RefreshToken.ExpiresAt), "refresh expiry %s", creds.RefreshToken.ExpiresAt)
			assert.Equal(t, tt.wantUserID, creds.UserID)
		})
	}

	t.Run("jwt claims fill expiry and user id", func(t *testing.T) {
		access := signedToken(t, jwt.MapClaims{"sub": "77", "exp": jwtExp.Unix()})
		body, err := json.Marshal(map[string]any{
			"access_token":  map[string]any{"token": access},
			"refresh_token": map[string]any{"token": "r", "expires_in": 60},
		})
		require.NoError(t, err)

		creds, err := mapper.Credentials(body, now)
		require.NoError(t, err)
		assert.True(t, jwtExp.Equal(creds.AccessToken.ExpiresAt))
		assert.Equal(t, "77", creds.UserID)
	})
}

func TestHasTokens(t *testing.T) {
	assert.True(t, mapper.HasTokens(json.RawMessage(`{"access_token": {"token": "a"}, "refresh_token": {"token": "r"}}`)))
	assert.False(t, mapper.HasTokens(json.RawMessage(`{"access_token": {"token": "a"}}`)))
	assert.False(t, mapper.HasTokens(json.RawMessage(`{"verification_method": "email"}`)))
	assert.False(t, mapper.HasTokens(json.RawMessage(`not json`)))
}

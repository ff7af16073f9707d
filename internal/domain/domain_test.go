package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiveStatus(t *testing.T) {
	tests := []struct {
		wire    string
		want    domain.LiveStatus
		wantErr bool
	}{
		{wire: "CREATED", want: domain.LiveStatusCreated},
		{wire: "PLAYING", want: domain.LiveStatusLive},
		{wire: "LIVE", want: domain.LiveStatusLive},
		{wire: "ENDED", want: domain.LiveStatusEnded},
		{wire: "playing", wantErr: true},
		{wire: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			got, err := domain.ParseLiveStatus(tt.wire)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownLiveStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentials(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var nilCreds *domain.Credentials
	assert.False(t, nilCreds.Valid())
	assert.True(t, nilCreds.AccessExpired(now))

	creds := &domain.Credentials{
		AccessToken:  domain.Token{Value: "a", ExpiresAt: now.Add(time.Minute)},
		RefreshToken: domain.Token{Value: "r", ExpiresAt: now.Add(time.Hour)},
	}
	assert.True(t, creds.Valid())
	assert.False(t, creds.AccessExpired(now))
	assert.True(t, creds.AccessExpired(now.Add(time.Minute)))

	creds.RefreshToken.Value = ""
	assert.False(t, creds.Valid())
}

func TestErrorTaxonomy(t *testing.T) {
	for _, err := range []error{
		domain.ErrAuthenticationRequired,
		domain.ErrInvalidCredentials,
		domain.ErrVerificationNotImplemented,
	} {
		assert.True(t, errors.Is(err, domain.ErrAuthentication), err.Error())
	}
	assert.False(t, errors.Is(domain.ErrInvalidCredentials, domain.ErrAuthenticationRequired))
}

func TestAccountInfo_LegalName(t *testing.T) {
	assert.Equal(t, "Jordan Smith", (&domain.AccountInfo{FirstName: "Jordan", LastName: "Smith"}).LegalName())
	assert.Equal(t, "Smith", (&domain.AccountInfo{LastName: "Smith"}).LegalName())
	assert.Equal(t, "Jordan", (&domain.AccountInfo{FirstName: "Jordan"}).LegalName())
}

package main

import (
	"testing"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		minor    int64
		currency string
		want     string
	}{
		{1500, "USD", "15.00 USD"},
		{5, "USD", "0.05 USD"},
		{-250, "EUR", "-2.50 EUR"},
		{0, "GBP", "0.00 GBP"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(tt.minor, tt.currency))
	}
}

func TestFormatAddress(t *testing.T) {
	addr := &domain.Address{
		FullName:    "Jordan Smith",
		Line1:       "1 Main St",
		City:        "Springfield",
		State:       "IL",
		PostalCode:  "62701",
		CountryCode: "US",
	}
	assert.Equal(t, "Jordan Smith, 1 Main St, Springfield, IL 62701, US", formatAddress(addr))
}

func TestRenderUser(t *testing.T) {
	out := renderUser(&domain.User{ID: "42", Username: "jlsgaming", FollowerCount: 1200, Bio: "cards"})

	assert.Contains(t, out, "@jlsgaming")
	assert.Contains(t, out, "1200")
	assert.Contains(t, out, "cards")
}

func TestRenderLives_Empty(t *testing.T) {
	assert.Contains(t, renderLives(nil), "No live streams.")
}

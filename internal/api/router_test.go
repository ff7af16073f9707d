package api_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/dom/whatnot-go/internal/config"
	"github.com/dom/whatnot-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRouter_Health(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.BaseURL() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestRouter_APIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("gateway-key"), bcrypt.MinCost)
	require.NoError(t, err)

	ts := testutil.NewTestServer(t, func(cfg *config.Config) {
		cfg.Gateway.KeyHash = string(hash)
	})
	ts.Platform.OnQuery("GetUser", map[string]any{"getUser": nil})

	resp, err := http.Get(ts.APIURL("/users/someone"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	testutil.AssertNoCalls(t, ts.Platform)

	req, err := http.NewRequest(http.MethodGet, ts.APIURL("/users/someone"), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer gateway-key")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Health stays open
	resp, err = http.Get(ts.BaseURL() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package testutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/dom/whatnot-go/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertTransportError verifies err is a TransportError and returns it.
func AssertTransportError(t *testing.T, err error) *transport.TransportError {
	t.Helper()

	var te *transport.TransportError
	require.True(t, errors.As(err, &te), "expected TransportError, got %T: %v", err, err)
	return te
}

// AssertNoCalls verifies the platform received nothing.
func AssertNoCalls(t *testing.T, p *Platform) {
	t.Helper()
	assert.Empty(t, p.Requests(), "expected no calls to the platform")
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	DefaultAPIURL     = "https://api.whatnot.com/api/v2"
	DefaultGraphQLURL = "https://api.whatnot.com/graphql/"

	maxErrorBody = 4 << 10
)

// Sent with every request; the platform rejects clients that do not look
// like its web app.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "application/json",
	"Accept-Language": "en-US,en;q=0.9",
	"Origin":          "https://www.whatnot.com",
	"Referer":         "https://www.whatnot.com/",
	"Content-Type":    "application/json",
}

type Options struct {
	APIURL     string
	GraphQLURL string
	// Timeout of zero leaves the http.Client default (no timeout).
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client issues REST and GraphQL requests against the platform through one
// shared http.Client.
type Client struct {
	apiURL     string
	graphqlURL string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.RWMutex
	token string
}

// New returns a Client for the given endpoints. Empty URLs select the
// production API.
func New(opts Options) *Client {
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.GraphQLURL == "" {
		opts.GraphQLURL = DefaultGraphQLURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		apiURL:     strings.TrimRight(opts.APIURL, "/"),
		graphqlURL: opts.GraphQLURL,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// SetToken sets the bearer token sent with every subsequent request. An empty
// token removes the Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// PostJSON posts body to a REST path and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, "transport.PostJSON "+path, c.apiURL+path, body, out)
}

// Close releases idle connections held by the underlying http.Client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) do(ctx context.Context, op, url string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bodyReader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("network error: %w", err)}
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(bodyBytes)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return Malformed(op, errors.New("empty body"))
		}
		return Malformed(op, err)
	}
	return nil
}

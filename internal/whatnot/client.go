// Package whatnot is the entry point for talking to the platform: it runs the
// login flow, keeps the credential bundle and exposes typed lookups.
package whatnot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dom/whatnot-go/internal/config"
	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/mapper"
	"github.com/dom/whatnot-go/internal/queries"
	"github.com/dom/whatnot-go/internal/session"
	"github.com/dom/whatnot-go/internal/transport"
)

const (
	// DefaultAppType identifies the client to the login endpoint.
	DefaultAppType = "web"
	// DefaultLivesPage is the page size used by GetUserLives when none is given.
	DefaultLivesPage = 6
)

// Options configures a Client. Zero values select the production endpoints.
type Options struct {
	APIURL     string
	GraphQLURL string
	ImagesURL  string
	// AppType is sent with the login request.
	AppType    string
	Timeout    time.Duration
	HTTPClient *http.Client
	// Store persists the credential bundle. Defaults to session.json in the
	// working directory.
	Store  session.Store
	Logger *slog.Logger
	Now    func() time.Time
}

// Client is safe for use by multiple goroutines.
type Client struct {
	transport *transport.Client
	mapper    *mapper.Mapper
	store     session.Store
	logger    *slog.Logger
	appType   string
	now       func() time.Time

	mu    sync.RWMutex
	creds *domain.Credentials
}

// New builds a Client from opts. The client starts unauthenticated; call
// Login or LoadSession before using account operations.
func New(opts Options) *Client {
	if opts.AppType == "" {
		opts.AppType = DefaultAppType
	}
	if opts.Store == nil {
		opts.Store = session.NewFile(session.DefaultPath)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Client{
		transport: transport.New(transport.Options{
			APIURL:     opts.APIURL,
			GraphQLURL: opts.GraphQLURL,
			Timeout:    opts.Timeout,
			HTTPClient: opts.HTTPClient,
			Logger:     opts.Logger,
		}),
		mapper:  mapper.New(opts.ImagesURL),
		store:   opts.Store,
		logger:  opts.Logger,
		appType: opts.AppType,
		now:     opts.Now,
	}
}

// NewFromConfig builds a client for the configured platform endpoints.
func NewFromConfig(cfg *config.Config, store session.Store, logger *slog.Logger) *Client {
	return New(Options{
		APIURL:     cfg.Platform.APIURL,
		GraphQLURL: cfg.Platform.GraphQLURL,
		ImagesURL:  cfg.Platform.ImagesURL,
		AppType:    cfg.Platform.AppType,
		Timeout:    cfg.Platform.HTTPTimeout,
		Store:      store,
		Logger:     logger,
	})
}

// Close releases pooled connections and the session store.
func (c *Client) Close() error {
	return errors.Join(c.transport.Close(), c.store.Close())
}

// Authenticated reports whether a credential bundle is held.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds.Valid()
}

// Credentials returns a copy of the held bundle, or nil.
func (c *Client) Credentials() *domain.Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.creds == nil {
		return nil
	}
	creds := *c.creds
	return &creds
}

// UserID returns the id of the logged in user, or "".
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.creds == nil {
		return ""
	}
	return c.creds.UserID
}

func (c *Client) setCredentials(creds *domain.Credentials) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()

	if creds == nil {
		c.transport.SetToken("")
		return
	}
	c.transport.SetToken(creds.AccessToken.Value)
}

// requireAuth runs fn only when a credential bundle is held, so
// unauthenticated calls never reach the network.
func requireAuth[T any](c *Client, op string, fn func() (T, error)) (T, error) {
	if !c.Authenticated() {
		var zero T
		return zero, fmt.Errorf("%s: %w", op, domain.ErrAuthenticationRequired)
	}
	return fn()
}

// LoadSession restores the bundle from the session store.
func (c *Client) LoadSession(ctx context.Context) error {
	const op = "whatnot.LoadSession"

	creds, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !creds.Valid() {
		return fmt.Errorf("%s: stored session holds no tokens: %w", op, domain.ErrAuthenticationRequired)
	}

	if creds.AccessExpired(c.now()) {
		c.logger.Warn("stored access token has expired",
			slog.String("user_id", creds.UserID),
			slog.Time("expires_at", creds.AccessToken.ExpiresAt),
		)
	}

	c.setCredentials(creds)
	c.logger.Info("session loaded", slog.String("user_id", creds.UserID))
	return nil
}

// SaveSession writes the held bundle to the session store.
func (c *Client) SaveSession(ctx context.Context) error {
	const op = "whatnot.SaveSession"

	creds := c.Credentials()
	if !creds.Valid() {
		return fmt.Errorf("%s: %w", op, domain.ErrAuthenticationRequired)
	}
	if err := c.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.logger.Info("session saved", slog.String("user_id", creds.UserID))
	return nil
}

// Logout forgets the bundle and removes it from the session store.
func (c *Client) Logout(ctx context.Context) error {
	c.setCredentials(nil)
	if err := c.store.Delete(ctx); err != nil {
		return fmt.Errorf("whatnot.Logout: %w", err)
	}
	return nil
}

// query runs a catalog operation and returns the named top-level field.
func (c *Client) query(ctx context.Context, op string, q queries.Query, vars map[string]any, field string) (json.RawMessage, error) {
	data, err := c.transport.Execute(ctx, q.Name, q.String(), vars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	raw, ok := data[field]
	if !ok {
		return nil, transport.Malformed(op, fmt.Errorf("missing %q in data", field))
	}
	return raw, nil
}

package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/whatnot-go/internal/api"
	"github.com/dom/whatnot-go/internal/config"
	"github.com/dom/whatnot-go/internal/domain"
	"github.com/dom/whatnot-go/internal/logging"
	"github.com/dom/whatnot-go/internal/session"
	"github.com/dom/whatnot-go/internal/whatnot"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection.
// The test is skipped when no container runtime is available.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_whatnot"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if sqlDB, err := tdb.DB.DB(); err == nil {
		sqlDB.Close()
	}
	if tdb.Container != nil {
		tdb.Container.Terminate(context.Background())
	}
}

// Truncate clears the sessions table for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	if err := tdb.DB.Exec("TRUNCATE TABLE whatnot_sessions").Error; err != nil {
		t.Logf("warning: failed to truncate whatnot_sessions: %v", err)
	}
}

// TestConfig returns a configuration pointed at the fake platform
func TestConfig(p *Platform) *config.Config {
	return &config.Config{
		Env: "test",
		Platform: config.Platform{
			APIURL:     p.APIURL(),
			GraphQLURL: p.GraphQLURL(),
			ImagesURL:  "https://images.example.com",
			AppType:    "web",
		},
		Session: config.Session{
			Driver: session.DriverMemory,
			Name:   session.DefaultName,
		},
		Gateway: config.Gateway{
			Port:          "0", // Random port
			WatchInterval: 20 * time.Millisecond,
		},
	}
}

// NewClient returns a client talking to the fake platform, backed by an
// in-memory session store.
func NewClient(t *testing.T, p *Platform) (*whatnot.Client, *session.MemoryStore) {
	t.Helper()

	store := session.NewMemory()
	client := whatnot.NewFromConfig(TestConfig(p), store, logging.Discard())
	t.Cleanup(func() { client.Close() })

	return client, store
}

// Login stores a valid session for userID and loads it into client.
func Login(t *testing.T, client *whatnot.Client, store session.Store, userID string) {
	t.Helper()

	now := time.Now().UTC()
	creds := &domain.Credentials{
		AccessToken:  domain.Token{Value: "access-token", ExpiresAt: now.Add(time.Hour)},
		RefreshToken: domain.Token{Value: "refresh-token", ExpiresAt: now.Add(24 * time.Hour)},
		UserID:       userID,
	}
	if err := store.Save(context.Background(), creds); err != nil {
		t.Fatalf("failed to save session: %v", err)
	}
	if err := client.LoadSession(context.Background()); err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
}

// TestServer holds all components for gateway integration testing
type TestServer struct {
	Server   *httptest.Server
	Platform *Platform
	Client   *whatnot.Client
	Store    *session.MemoryStore
	Config   *config.Config
}

// NewTestServer creates a gateway in front of a fresh fake platform. mutate,
// when given, adjusts the config before the router is built.
func NewTestServer(t *testing.T, mutate ...func(*config.Config)) *TestServer {
	t.Helper()

	p := NewPlatform(t)
	cfg := TestConfig(p)
	for _, m := range mutate {
		m(cfg)
	}

	client, store := NewClient(t, p)
	router := api.NewRouter(client, cfg, logging.Discard())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		Platform: p,
		Client:   client,
		Store:    store,
		Config:   cfg,
	}
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the watch URL for a live stream
func (ts *TestServer) WebSocketURL(liveID string) string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	return fmt.Sprintf("%s/api/v1/lives/%s/watch", wsURL, liveID)
}

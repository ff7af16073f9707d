// Package session persists the credential bundle between runs.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/whatnot-go/internal/domain"
	"gorm.io/gorm"
)

// Driver identifiers
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

const (
	DefaultName = "default"
	DefaultPath = "session.json"
)

var ErrNotFound = errors.New("session not found")

// Store loads and saves one credential bundle. Keyed drivers store it under
// the configured session name.
type Store interface {
	Load(ctx context.Context) (*domain.Credentials, error)
	Save(ctx context.Context, creds *domain.Credentials) error
	Delete(ctx context.Context) error
	Close() error
}

type Config struct {
	Driver string
	// Name keys the bundle in database and redis stores.
	Name  string
	Path  string
	DSN   string
	Redis *RedisConfig
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// Dependencies lets callers share an existing database handle with the
// postgres and sqlite drivers.
type Dependencies struct {
	DB *gorm.DB
}

// New creates a store for the configured driver. The file driver is used
// when none is set.
func New(cfg Config, deps Dependencies) (Store, error) {
	const op = "session.New"

	if cfg.Name == "" {
		cfg.Name = DefaultName
	}

	switch cfg.Driver {
	case "", DriverFile:
		path := cfg.Path
		if path == "" {
			path = DefaultPath
		}
		return NewFile(path), nil
	case DriverMemory:
		return NewMemory(), nil
	case DriverPostgres, DriverSQLite:
		db, owned := deps.DB, false
		if db == nil {
			var err error
			if db, err = OpenDB(cfg.Driver, cfg.DSN); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			owned = true
		}
		store, err := NewGorm(db, cfg.Name, owned)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil
	case DriverRedis:
		store, err := NewRedis(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%s: unsupported session driver: %s", op, cfg.Driver)
	}
}

func validate(op string, creds *domain.Credentials) error {
	if creds == nil {
		return fmt.Errorf("%s: no credentials to save", op)
	}
	return nil
}

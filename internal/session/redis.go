package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dom/whatnot-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "whatnot:session:"

// RedisStore keeps the bundle as a JSON value that expires with the refresh
// token.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedis connects to cfg.Redis and stores the bundle under the key
// prefix plus cfg.Name.
func NewRedis(cfg Config) (*RedisStore, error) {
	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		return nil, errors.New("redis session driver requires an address")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	name := cfg.Name
	if name == "" {
		name = DefaultName
	}

	return &RedisStore{client: client, key: prefix + name}, nil
}

func (s *RedisStore) Load(ctx context.Context) (*domain.Credentials, error) {
	const op = "session.RedisStore.Load"

	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &creds, nil
}

func (s *RedisStore) Save(ctx context.Context, creds *domain.Credentials) error {
	const op = "session.RedisStore.Save"

	if err := validate(op, creds); err != nil {
		return err
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Zero keeps the key without expiry.
	var ttl time.Duration
	if exp := creds.RefreshToken.ExpiresAt; !exp.IsZero() {
		ttl = time.Until(exp)
		if ttl <= 0 {
			return fmt.Errorf("%s: refresh token already expired", op)
		}
	}

	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.Delete: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

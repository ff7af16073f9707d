package config

import (
	"fmt"
	"time"

	"github.com/dom/whatnot-go/internal/session"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environments select the log format.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env      string `yaml:"env" env:"WHATNOT_ENV" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"WHATNOT_LOG_LEVEL"`

	Platform Platform `yaml:"platform"`
	Session  Session  `yaml:"session"`
	Gateway  Gateway  `yaml:"gateway"`
}

type Platform struct {
	APIURL     string `yaml:"api_url" env:"WHATNOT_API_URL" env-default:"https://api.whatnot.com/api/v2"`
	GraphQLURL string `yaml:"graphql_url" env:"WHATNOT_GRAPHQL_URL" env-default:"https://api.whatnot.com/graphql/"`
	ImagesURL  string `yaml:"images_url" env:"WHATNOT_IMAGES_URL" env-default:"https://images.whatnot.com"`
	AppType    string `yaml:"app_type" env:"WHATNOT_APP_TYPE" env-default:"web"`
	// Zero leaves requests without a client-side timeout.
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"WHATNOT_HTTP_TIMEOUT" env-default:"0s"`
}

type Session struct {
	Driver string `yaml:"driver" env:"WHATNOT_SESSION_DRIVER" env-default:"file"`
	Name   string `yaml:"name" env:"WHATNOT_SESSION_NAME" env-default:"default"`
	Path   string `yaml:"path" env:"WHATNOT_SESSION_PATH" env-default:"session.json"`
	DSN    string `yaml:"dsn" env:"WHATNOT_SESSION_DSN"`

	RedisAddr     string `yaml:"redis_addr" env:"WHATNOT_REDIS_ADDR"`
	RedisUsername string `yaml:"redis_username" env:"WHATNOT_REDIS_USERNAME"`
	RedisPassword string `yaml:"redis_password" env:"WHATNOT_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"WHATNOT_REDIS_DB" env-default:"0"`
	RedisPrefix   string `yaml:"redis_prefix" env:"WHATNOT_REDIS_PREFIX" env-default:"whatnot:session:"`
}

type Gateway struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
	// KeyHash is a bcrypt hash of the API key callers must present. Empty
	// disables the check.
	KeyHash       string        `yaml:"key_hash" env:"WHATNOT_GATEWAY_KEY_HASH"`
	WatchInterval time.Duration `yaml:"watch_interval" env:"WHATNOT_WATCH_INTERVAL" env-default:"5s"`
	ReadTimeout   time.Duration `yaml:"read_timeout" env:"WHATNOT_GATEWAY_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout  time.Duration `yaml:"write_timeout" env:"WHATNOT_GATEWAY_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout   time.Duration `yaml:"idle_timeout" env:"WHATNOT_GATEWAY_IDLE_TIMEOUT" env-default:"60s"`
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. A non-empty path names a YAML
// file read first; environment variables still override it.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if cfg.Gateway.WatchInterval <= 0 {
		return nil, fmt.Errorf("config.Load: WHATNOT_WATCH_INTERVAL must be positive")
	}
	if cfg.Platform.HTTPTimeout < 0 {
		return nil, fmt.Errorf("config.Load: WHATNOT_HTTP_TIMEOUT must not be negative")
	}

	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// StoreConfig translates the session settings for session.New.
func (s Session) StoreConfig() session.Config {
	cfg := session.Config{
		Driver: s.Driver,
		Name:   s.Name,
		Path:   s.Path,
		DSN:    s.DSN,
	}
	if s.RedisAddr != "" {
		cfg.Redis = &session.RedisConfig{
			Addr:     s.RedisAddr,
			Username: s.RedisUsername,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
			Prefix:   s.RedisPrefix,
		}
	}
	return cfg
}

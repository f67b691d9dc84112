package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Admin   AdminConfig
	Session SessionConfig
	Search  SearchConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"3000"`
	Host         string        `env:"HOST" envDefault:"0.0.0.0"`
	Env          string        `env:"ENV" envDefault:"development"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

type APIConfig struct {
	BaseURL        string        `env:"NOTES_API_URL" envDefault:"http://localhost:5000"`
	RequestTimeout time.Duration `env:"NOTES_API_TIMEOUT" envDefault:"10s"`
	RetryAttempts  uint          `env:"NOTES_API_RETRY_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay time.Duration `env:"NOTES_API_RETRY_DELAY" envDefault:"1s"`
	MaxUploadBytes int64         `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`
}

type AdminConfig struct {
	// AuthMode is "token" (password exchanged at the API login endpoint) or
	// "secret" (shared secret checked against SecretHash, then forwarded).
	AuthMode   string `env:"ADMIN_AUTH_MODE" envDefault:"token"`
	SecretHash string `env:"ADMIN_SECRET_HASH"`
}

type SessionConfig struct {
	Store         string        `env:"SESSION_STORE" envDefault:"memory"`
	CookieName    string        `env:"SESSION_COOKIE" envDefault:"notesnest_session"`
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	Secure        bool          `env:"SESSION_SECURE" envDefault:"false"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
}

type SearchConfig struct {
	Threshold float64 `env:"SEARCH_THRESHOLD" envDefault:"0.4"`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Admin.AuthMode {
	case "token":
	case "secret":
		if c.Admin.SecretHash == "" {
			return fmt.Errorf("ADMIN_SECRET_HASH is required when ADMIN_AUTH_MODE=secret")
		}
	default:
		return fmt.Errorf("invalid ADMIN_AUTH_MODE %q", c.Admin.AuthMode)
	}

	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid SESSION_STORE %q", c.Session.Store)
	}

	if c.API.RetryAttempts == 0 {
		return fmt.Errorf("NOTES_API_RETRY_ATTEMPTS must be at least 1")
	}

	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("SEARCH_THRESHOLD must be within [0, 1], got %v", c.Search.Threshold)
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// ApprovedNotesURL is the raw endpoint linked from the listing error panel.
func (c *Config) ApprovedNotesURL() string {
	return c.API.BaseURL + "/api/notes/approved"
}

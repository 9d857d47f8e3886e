package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Session       SessionConfig       `mapstructure:"session"`
	Security      SecurityConfig      `mapstructure:"security" validate:"required"`
	Notifier      NotifierConfig      `mapstructure:"notifier"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
	Source          string        `mapstructure:"source"`
}

// SessionConfig selects and configures the durable session store backend.
// "redis" is the production backend, "local" keeps sessions in a sqlite
// file next to the process (useful for single-node and development runs).
type SessionConfig struct {
	Backend     string `mapstructure:"backend"`
	KeyPrefix   string `mapstructure:"key_prefix"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisDB     int    `mapstructure:"redis_db"`
	RedisPrefix string `mapstructure:"redis_prefix"`
	LocalPath   string `mapstructure:"local_path"`
}

type SecurityConfig struct {
	TokenSecret   string        `mapstructure:"token_secret" validate:"required,min=32"`
	TokenDuration time.Duration `mapstructure:"token_duration" validate:"required,min=1m"`
	BCryptCost    int           `mapstructure:"bcrypt_cost" validate:"required,min=10,max=15"`
	WebhookToken  string        `mapstructure:"webhook_token"`
}

type NotifierConfig struct {
	WebhookURL     string        `mapstructure:"webhook_url"`
	APIKey         string        `mapstructure:"api_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxWorkers     int           `mapstructure:"max_workers"`
	JobQueueSize   int           `mapstructure:"job_queue_size"`
	WorkerPoolSize int           `mapstructure:"worker_pool_size"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SessionConfig) Validate() error {
	switch c.Backend {
	case "", "local":
		// LocalPath may be empty, the store falls back to a default file.
	case "redis":
		if c.RedisAddr == "" {
			return errors.New("redis_addr is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q (valid: redis, local)", c.Backend)
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if len(c.TokenSecret) < 32 {
		return errors.New("token secret must be at least 32 characters")
	}
	if c.TokenDuration < time.Minute {
		return errors.New("token duration must be at least one minute")
	}
	return nil
}

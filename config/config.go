package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

/* Config holds every setting of the bridge. Each key has a default so the service boots without a .env file */

type Config struct {
	Port      string `mapstructure:"PORT"`
	APIPrefix string `mapstructure:"API_PREFIX"`

	WebhookToken     string `mapstructure:"WEBHOOK_TOKEN"`
	AcceptedEvents   string `mapstructure:"ACCEPTED_EVENTS"`
	EventLogCapacity int    `mapstructure:"EVENT_LOG_CAPACITY"`
	EventStore       string `mapstructure:"EVENT_STORE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisKey      string `mapstructure:"REDIS_KEY"`

	MillenniumBaseURL string `mapstructure:"MILLENNIUM_BASE_URL"`
	MillenniumVitrine string `mapstructure:"MILLENNIUM_VITRINE"`

	LookupWorkers   int           `mapstructure:"LOOKUP_WORKERS"`
	LookupQueueSize int           `mapstructure:"LOOKUP_QUEUE_SIZE"`
	LookupTimeout   time.Duration `mapstructure:"LOOKUP_TIMEOUT"`

	ProxyTimeout time.Duration `mapstructure:"PROXY_TIMEOUT"`
	MaxBodyBytes int64         `mapstructure:"MAX_BODY_BYTES"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogJSON  bool   `mapstructure:"LOG_JSON"`
}

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

var defaults = map[string]any{
	"PORT":                "4000",
	"API_PREFIX":          "/api/troquecommerce",
	"WEBHOOK_TOKEN":       "MyWebhookSecret123",
	"ACCEPTED_EVENTS":     "6,21,3",
	"EVENT_LOG_CAPACITY":  1000,
	"EVENT_STORE":         StoreMemory,
	"REDIS_ADDR":          "localhost:6379",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"REDIS_KEY":           "troquecommerce:webhook-events",
	"MILLENNIUM_BASE_URL": "https://api.millennium.com.br",
	"MILLENNIUM_VITRINE":  "101",
	"LOOKUP_WORKERS":      4,
	"LOOKUP_QUEUE_SIZE":   100,
	"LOOKUP_TIMEOUT":      "30s",
	"PROXY_TIMEOUT":       "30s",
	"MAX_BODY_BYTES":      1 << 20,
	"LOG_LEVEL":           "info",
	"LOG_JSON":            true,
}

// GetConfig reads an optional .env file from the working directory, then the environment.
func GetConfig() (*Config, error) {
	return load(".")
}

func load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// WEBHOOK_TOKEN="" must be able to switch authentication off
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &config, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT cannot be empty")
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with / (got %q)", c.APIPrefix)
	}
	if c.EventLogCapacity < 1 {
		return fmt.Errorf("EVENT_LOG_CAPACITY must be at least 1 (got %d)", c.EventLogCapacity)
	}
	if c.EventStore != StoreMemory && c.EventStore != StoreRedis {
		return fmt.Errorf("EVENT_STORE must be %q or %q (got %q)", StoreMemory, StoreRedis, c.EventStore)
	}
	if c.LookupWorkers < 1 {
		return fmt.Errorf("LOOKUP_WORKERS must be at least 1 (got %d)", c.LookupWorkers)
	}
	if c.LookupQueueSize < 1 {
		return fmt.Errorf("LOOKUP_QUEUE_SIZE must be at least 1 (got %d)", c.LookupQueueSize)
	}
	if c.LookupTimeout <= 0 {
		return errors.New("LOOKUP_TIMEOUT must be positive")
	}
	if c.ProxyTimeout <= 0 {
		return errors.New("PROXY_TIMEOUT must be positive")
	}
	return nil
}

// Logger builds the structured logger shared by the HTTP layer and the background lookups.
func (c *Config) Logger(service string) zerolog.Logger {
	return httplog.NewLogger(service, httplog.Options{
		JSON:     c.LogJSON,
		Concise:  !c.LogJSON,
		LogLevel: c.LogLevel,
		Tags: map[string]string{
			"vitrine": c.MillenniumVitrine,
		},
	})
}

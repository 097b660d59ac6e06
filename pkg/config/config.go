package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

const (
	// EnvPrefix namespaces every environment variable read by the SDK.
	EnvPrefix = "WORKERS"

	EnvAPIToken  = "WORKERS_API_TOKEN"
	EnvBaseURL   = "WORKERS_API_BASE_URL"
	EnvAccountID = "WORKERS_ACCOUNT_ID"
)

type Config struct {
	API APIConfig
	App AppConfig
}

// Load reads configuration from the environment, with a best-effort .env
// overlay for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every configuration problem at once rather than the first.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.Token) == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvAPIToken))
	}
	if strings.TrimSpace(c.API.AccountID) == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvAccountID))
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s: %w", EnvBaseURL, err))
	} else if !strings.HasPrefix(c.API.BaseURL, "http") {
		errs = append(errs, fmt.Errorf("%s must be an http(s) URL", EnvBaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("WORKERS_API_TIMEOUT must be positive"))
	}
	return multierr.Combine(errs...)
}

type APIConfig struct {
	Token     string        `envconfig:"WORKERS_API_TOKEN"`
	BaseURL   string        `envconfig:"WORKERS_API_BASE_URL" default:"https://api.cloudflare.com/client/v4"`
	AccountID string        `envconfig:"WORKERS_ACCOUNT_ID"`
	Timeout   time.Duration `envconfig:"WORKERS_API_TIMEOUT" default:"30s"`
	UserAgent string        `envconfig:"WORKERS_API_USER_AGENT" default:"workers-sdk-go"`
}

type AppConfig struct {
	LogLevel     string `envconfig:"WORKERS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WORKERS_LOG_WARN_STACK" default:"false"`
}

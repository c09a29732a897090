package client

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// EnvPrefix is the prefix of every environment variable read by LoadConfig.
const EnvPrefix = "NEWSDESK"

// Defaults used when the environment does not override them.
const (
	DefaultBaseURL = "http://localhost:8080"

	// DefaultArticlesTimeout bounds the article CRUD calls and the
	// backfill trigger.
	DefaultArticlesTimeout = 30 * time.Second

	// DefaultSummaryTimeout bounds summary generation, which waits on
	// model inference in the backend.
	DefaultSummaryTimeout = 120 * time.Second
)

// Config is resolved once and handed to New. The Client never reads the
// environment itself.
//
// Example: NEWSDESK_API_BASE_URL=https://news.example.com NEWSDESK_SUMMARY_TIMEOUT=3m
type Config struct {
	BaseURL         string        `envconfig:"API_BASE_URL"`
	ArticlesTimeout time.Duration `envconfig:"ARTICLES_TIMEOUT" default:"30s"`
	SummaryTimeout  time.Duration `envconfig:"SUMMARY_TIMEOUT"  default:"120s"`
	Debug           bool          `envconfig:"DEBUG"            default:"false"`

	// APIKey is optional; the backend accepts anonymous calls. When set it
	// is sent as "Authorization: Bearer <key>".
	APIKey string `envconfig:"API_KEY"`
}

// DefaultConfig returns the local development configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		ArticlesTimeout: DefaultArticlesTimeout,
		SummaryTimeout:  DefaultSummaryTimeout,
	}
}

// LoadConfig populates Config from environment variables (prefix NEWSDESK_).
// An unset or empty NEWSDESK_API_BASE_URL falls back to DefaultBaseURL.
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("failed to process environment variables: %w", err)
	}
	c.ResolveDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	log.Debug().
		Str("base_url", c.BaseURL).
		Dur("articles_timeout", c.ArticlesTimeout).
		Dur("summary_timeout", c.SummaryTimeout).
		Bool("debug", c.Debug).
		Bool("api_key_set", c.APIKey != "").
		Msg("client configuration loaded")

	return c, nil
}

// ResolveDefaults fills zero values and normalises the base URL.
func (c *Config) ResolveDefaults() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ArticlesTimeout == 0 {
		c.ArticlesTimeout = DefaultArticlesTimeout
	}
	if c.SummaryTimeout == 0 {
		c.SummaryTimeout = DefaultSummaryTimeout
	}
}

// Validate rejects configurations the facade cannot use.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base url %q: missing host", c.BaseURL)
	}
	if c.ArticlesTimeout <= 0 {
		return fmt.Errorf("articles timeout must be > 0")
	}
	if c.SummaryTimeout <= 0 {
		return fmt.Errorf("summary timeout must be > 0")
	}
	return nil
}

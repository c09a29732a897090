package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options run before the facades are built; nothing they set can change
// afterwards.
type Option func(*Client) error

// WithTransport replaces the underlying http.RoundTripper of both surfaces.
// Useful for custom TLS settings, proxies, tracing, or tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return fmt.Errorf("nil transport")
		}
		c.transport = rt
		return nil
	}
}

// WithDebugLogging wraps the transport so each request/response is dumped
// at debug level when enabled is true.
//
// Do not enable this option in production environments as it logs full
// request and response bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		c.userAgent = ua
		return nil
	}
}

// WithAPIKey authenticates every call with a bearer token, overriding
// Config.APIKey.
func WithAPIKey(key string) Option {
	return func(c *Client) error {
		if key == "" {
			return fmt.Errorf("api key cannot be empty")
		}
		c.cfg.APIKey = key
		return nil
	}
}

// WithLogger sets the logger used for debug output instead of the global
// zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = &l
		return nil
	}
}

// WithoutMetrics stops the Client from recording Prometheus metrics.
func WithoutMetrics() Option {
	return func(c *Client) error {
		c.observer = nil
		return nil
	}
}

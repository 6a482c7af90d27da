package prover

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Option configures the client beyond its base configuration.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The configured per-call
// timeout still applies through request contexts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the structured logger; defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

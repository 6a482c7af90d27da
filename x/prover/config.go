package prover

import (
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL points at the hosted testnet proving endpoint.
const DefaultAPIURL = "https://proof.testnet.polymer.zone"

const (
	DefaultMaxAttempts = 20
	DefaultInterval    = 3 * time.Second
	DefaultTimeout     = 60 * time.Second
)

// Config holds client configuration. It is immutable after NewClient and may
// be shared by reference across any number of concurrent requests.
type Config struct {
	APIURL      string        `mapstructure:"api_url"      yaml:"api_url"`
	APIKey      string        `mapstructure:"api_key"      yaml:"api_key"`
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	Interval    time.Duration `mapstructure:"interval"     yaml:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"      yaml:"timeout"`
	Debug       bool          `mapstructure:"debug"        yaml:"debug"`
}

// DefaultConfig returns the stock configuration; APIKey must still be set.
func DefaultConfig() Config {
	return Config{
		APIURL:      DefaultAPIURL,
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultInterval,
		Timeout:     DefaultTimeout,
	}
}

// withDefaults fills zero-valued optional fields.
func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return NewError(ErrInvalidArgument, "api key is required")
	}
	if _, err := url.Parse(c.APIURL); err != nil {
		return Errorf(ErrInvalidArgument, "invalid api url %q", c.APIURL).WithCause(err)
	}
	if c.MaxAttempts <= 0 {
		return Errorf(ErrInvalidArgument, "max attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.Interval <= 0 {
		return Errorf(ErrInvalidArgument, "interval must be positive, got %s", c.Interval)
	}
	if c.Timeout <= 0 {
		return Errorf(ErrInvalidArgument, "timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

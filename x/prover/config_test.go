package prover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "k"
	require.NoError(t, cfg.Validate())

	t.Run("missing api key", func(t *testing.T) {
		bad := DefaultConfig()
		require.True(t, IsKind(bad.Validate(), ErrInvalidArgument))
	})

	t.Run("non-positive attempts", func(t *testing.T) {
		bad := cfg
		bad.MaxAttempts = -1
		require.True(t, IsKind(bad.Validate(), ErrInvalidArgument))
	})

	t.Run("non-positive interval", func(t *testing.T) {
		bad := cfg
		bad.Interval = -time.Second
		require.True(t, IsKind(bad.Validate(), ErrInvalidArgument))
	})
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "k"}.withDefaults()
	require.Equal(t, DefaultAPIURL, cfg.APIURL)
	require.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
	require.Equal(t, DefaultInterval, cfg.Interval)
	require.Equal(t, DefaultTimeout, cfg.Timeout)

	// Explicit values are preserved.
	custom := Config{APIKey: "k", MaxAttempts: 5, Interval: time.Second}.withDefaults()
	require.Equal(t, 5, custom.MaxAttempts)
	require.Equal(t, time.Second, custom.Interval)
}

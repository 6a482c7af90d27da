package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	serverapi "github.com/compose-network/prover-client/server/api"
	"github.com/compose-network/prover-client/x/prover"
)

// Config holds the complete application configuration.
type Config struct {
	Prover   prover.Config    `mapstructure:"prover"   yaml:"prover"`
	Ethereum EthereumConfig   `mapstructure:"ethereum" yaml:"ethereum"`
	Stub     serverapi.Config `mapstructure:"stub"     yaml:"stub"`
	Metrics  MetricsConfig    `mapstructure:"metrics"  yaml:"metrics"`
	Log      LogConfig        `mapstructure:"log"      yaml:"log"`
}

// EthereumConfig holds the execution-layer RPC connection settings.
type EthereumConfig struct {
	RPCURL string `mapstructure:"rpc_url" yaml:"rpc_url" env:"ETHEREUM_RPC_URL"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" env:"METRICS_ENABLED"`
	Port    int    `mapstructure:"port"    yaml:"port"    env:"METRICS_PORT"`
	Path    string `mapstructure:"path"    yaml:"path"    env:"METRICS_PATH"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  env:"LOG_LEVEL"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty" env:"LOG_PRETTY"`
}

// Load loads configuration from an optional file and the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Fallback env aliases for the hosted service credentials.
	if strings.TrimSpace(cfg.Prover.APIKey) == "" {
		if val := strings.TrimSpace(os.Getenv("PROVER_API_KEY")); val != "" {
			cfg.Prover.APIKey = val
		}
	}
	if strings.TrimSpace(cfg.Ethereum.RPCURL) == "" {
		if val := strings.TrimSpace(os.Getenv("ETHEREUM_RPC_URL")); val != "" {
			cfg.Ethereum.RPCURL = val
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("prover.api_url", prover.DefaultAPIURL)
	v.SetDefault("prover.max_attempts", prover.DefaultMaxAttempts)
	v.SetDefault("prover.interval", prover.DefaultInterval)
	v.SetDefault("prover.timeout", prover.DefaultTimeout)

	stub := serverapi.DefaultConfig()
	v.SetDefault("stub.listen_addr", stub.ListenAddr)
	v.SetDefault("stub.read_header_timeout", stub.ReadHeaderTimeout)
	v.SetDefault("stub.read_timeout", stub.ReadTimeout)
	v.SetDefault("stub.write_timeout", stub.WriteTimeout)
	v.SetDefault("stub.idle_timeout", stub.IdleTimeout)
	v.SetDefault("stub.max_header_bytes", stub.MaxHeaderBytes)
	v.SetDefault("stub.proving_delay", stub.ProvingDelay)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9091)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

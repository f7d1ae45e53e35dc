// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	RPCEndpoint     string `mapstructure:"rpc_endpoint"`
	Commitment      string `mapstructure:"commitment"`
	QuoteMint       string `mapstructure:"quote_mint"`
	SlippagePercent uint8  `mapstructure:"slippage_percent"`
	Retries         int    `mapstructure:"retries"`
	DebugLogging    bool   `mapstructure:"debug_logging"`
	LogFile         string `mapstructure:"log_file"`
}

const (
	DefaultRPCEndpoint     = "https://api.mainnet-beta.solana.com"
	DefaultCommitment      = "confirmed"
	DefaultSlippagePercent = 1
	DefaultRetries         = 3
)

// Load reads the configuration file at path, fills unset keys with
// defaults and applies PUMPSWAP_* environment overrides. An empty path
// skips the file and uses defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"rpc_endpoint":     DefaultRPCEndpoint,
		"commitment":       DefaultCommitment,
		"slippage_percent": DefaultSlippagePercent,
		"retries":          DefaultRetries,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.RPCEndpoint == "" {
		return errors.New("rpc_endpoint is empty")
	}
	if err := validateURL(cfg.RPCEndpoint, "http"); err != nil {
		return errors.New("invalid RPC URL protocol")
	}
	if cfg.SlippagePercent > 100 {
		return errors.New("slippage_percent must be between 0 and 100")
	}
	if cfg.Retries < 0 {
		return errors.New("invalid retries count")
	}
	switch cfg.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return errors.New("commitment must be processed, confirmed or finalized")
	}
	return nil
}

func validateURL(rawURL string, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("PUMPSWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if endpoint := v.GetString("RPC_ENDPOINT"); endpoint != "" {
		cfg.RPCEndpoint = endpoint
	}
	if commitment := v.GetString("COMMITMENT"); commitment != "" {
		cfg.Commitment = commitment
	}
	if mint := v.GetString("QUOTE_MINT"); mint != "" {
		cfg.QuoteMint = mint
	}
}

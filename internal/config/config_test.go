// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

var validConfigJSON = `{
    "rpc_endpoint": "https://rpc.example.org",
    "commitment": "finalized",
    "quote_mint": "So11111111111111111111111111111111111111112",
    "slippage_percent": 2,
    "retries": 5,
    "debug_logging": true,
    "log_file": "logs/pumpswap.log"
}`

func setupTestConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return configPath
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name:    "Valid config",
			content: validConfigJSON,
			wantErr: false,
			check: func(cfg *Config) bool {
				return cfg.RPCEndpoint == "https://rpc.example.org" &&
					cfg.Commitment == "finalized" &&
					cfg.SlippagePercent == 2 &&
					cfg.Retries == 5 &&
					cfg.DebugLogging
			},
		},
		{
			name:    "Defaults fill unset keys",
			content: `{"debug_logging": false}`,
			wantErr: false,
			check: func(cfg *Config) bool {
				return cfg.RPCEndpoint == DefaultRPCEndpoint &&
					cfg.Commitment == DefaultCommitment &&
					cfg.SlippagePercent == DefaultSlippagePercent &&
					cfg.Retries == DefaultRetries
			},
		},
		{
			name:    "Invalid JSON syntax",
			content: "{invalid json",
			wantErr: true,
		},
		{
			name:    "Unknown commitment",
			content: `{"commitment": "instant"}`,
			wantErr: true,
		},
		{
			name:    "Slippage out of range",
			content: `{"slippage_percent": 101}`,
			wantErr: true,
		},
		{
			name:    "Non-HTTP endpoint",
			content: `{"rpc_endpoint": "wss://rpc.example.org"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := setupTestConfig(t, tt.content)

			cfg, err := Load(configPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.check != nil && !tt.check(cfg) {
				t.Error("Load() returned unexpected configuration")
			}
		})
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RPCEndpoint != DefaultRPCEndpoint {
		t.Errorf("RPCEndpoint = %q, want default", cfg.RPCEndpoint)
	}
	if cfg.Retries != DefaultRetries {
		t.Errorf("Retries = %d, want %d", cfg.Retries, DefaultRetries)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PUMPSWAP_RPC_ENDPOINT", "https://env-rpc.example.org")
	t.Setenv("PUMPSWAP_COMMITMENT", "processed")

	configPath := setupTestConfig(t, validConfigJSON)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RPCEndpoint != "https://env-rpc.example.org" {
		t.Errorf("RPCEndpoint = %q, want environment override", cfg.RPCEndpoint)
	}
	if cfg.Commitment != "processed" {
		t.Errorf("Commitment = %q, want processed", cfg.Commitment)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name: "Valid configuration",
			cfg: &Config{
				RPCEndpoint:     "https://rpc.example.org",
				Commitment:      "confirmed",
				SlippagePercent: 1,
				Retries:         3,
			},
			wantErr: false,
		},
		{
			name:    "Empty endpoint",
			cfg:     &Config{Commitment: "confirmed"},
			wantErr: true,
		},
		{
			name: "Negative retries",
			cfg: &Config{
				RPCEndpoint: "https://rpc.example.org",
				Commitment:  "confirmed",
				Retries:     -1,
			},
			wantErr: true,
		},
		{
			name: "Slippage above limit",
			cfg: &Config{
				RPCEndpoint:     "https://rpc.example.org",
				Commitment:      "confirmed",
				SlippagePercent: 101,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package node

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config keys, shared by config files, SHINDE_* env vars and CLI flags.
const (
	KeyDataDir          = "datadir"
	KeyChain            = "chain"
	KeyRuntime          = "runtime"
	KeyRPCPort          = "rpc.port"
	KeyLogLevel         = "log.level"
	KeyTelemetryEnabled = "telemetry.enabled"
)

type Config struct {
	DataDir string
	// Chain is "dev", "local" or a chain spec file.
	Chain string
	// Runtime is the path of the runtime code blob for built-in chains.
	Runtime          string
	RPCPort          int
	LogLevel         string
	TelemetryEnabled bool
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		DataDir:          filepath.Join(home, ".shinde"),
		Chain:            "dev",
		Runtime:          "",
		RPCPort:          9933,
		LogLevel:         "info",
		TelemetryEnabled: true,
	}
}

// NewViper returns a viper instance carrying the defaults and SHINDE_* env lookup.
func NewViper() *viper.Viper {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault(KeyDataDir, def.DataDir)
	v.SetDefault(KeyChain, def.Chain)
	v.SetDefault(KeyRuntime, def.Runtime)
	v.SetDefault(KeyRPCPort, def.RPCPort)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyTelemetryEnabled, def.TelemetryEnabled)

	v.SetEnvPrefix("shinde")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads an optional config file (yaml, toml or json) on top of the
// defaults and environment.
func LoadConfig(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return ConfigFromViper(v)
}

var ErrInvalidConfig = errors.New("invalid config")

func ConfigFromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DataDir:          v.GetString(KeyDataDir),
		Chain:            v.GetString(KeyChain),
		Runtime:          v.GetString(KeyRuntime),
		RPCPort:          v.GetInt(KeyRPCPort),
		LogLevel:         v.GetString(KeyLogLevel),
		TelemetryEnabled: v.GetBool(KeyTelemetryEnabled),
	}

	if cfg.DataDir == "" {
		return nil, fmt.Errorf("%w: empty %s", ErrInvalidConfig, KeyDataDir)
	}
	if cfg.RPCPort < 0 || cfg.RPCPort > 65535 {
		return nil, fmt.Errorf("%w: %s %d out of range", ErrInvalidConfig, KeyRPCPort, cfg.RPCPort)
	}
	return cfg, nil
}

package app

import (
	"fmt"
	"os"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. AMM_LOG_LEVEL.
	EnvPrefix = "AMM"

	LogFormatPlain = "plain"
	LogFormatJSON  = "json"

	defaultDBName = "application"
)

// Config is the host configuration of an AMM node.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// DBBackend is a cosmos-db backend name: goleveldb or memdb.
	DBBackend string `mapstructure:"db_backend"`
	DataDir   string `mapstructure:"data_dir"`

	// Admin and FeeRecipient seed the global config of a fresh chain.
	Admin        string `mapstructure:"admin"`
	FeeRecipient string `mapstructure:"fee_recipient"`

	// MetricsEnabled starts the Prometheus /metrics server with the node.
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsAddress string `mapstructure:"metrics_address"`

	Tracing TracingConfig `mapstructure:"tracing"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", LogFormatPlain)
	v.SetDefault("db_backend", "goleveldb")
	v.SetDefault("data_dir", "data")
	v.SetDefault("admin", "")
	v.SetDefault("fee_recipient", "")
	v.SetDefault("metrics_enabled", false)
	v.SetDefault("metrics_address", "127.0.0.1:26660")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_rate", 1.0)
}

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfig reads the configuration from defaults, then the optional file at
// path (toml, yaml or json by extension), then AMM_* environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the values a node cannot start without.
func (c Config) Validate() error {
	switch c.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return fmt.Errorf("log_format must be %q or %q, got %q", LogFormatPlain, LogFormatJSON, c.LogFormat)
	}
	if c.LogLevel == "" {
		return fmt.Errorf("log_level cannot be empty")
	}

	switch c.DBBackend {
	case "goleveldb":
		if c.DataDir == "" {
			return fmt.Errorf("data_dir is required for the goleveldb backend")
		}
	case "memdb":
	default:
		return fmt.Errorf("unsupported db_backend %q", c.DBBackend)
	}

	// roles are optional, a chain can start without them and be
	// initialised from an imported genesis
	for name, addr := range map[string]string{"admin": c.Admin, "fee_recipient": c.FeeRecipient} {
		if addr == "" {
			continue
		}
		if _, err := sdk.AccAddressFromBech32(addr); err != nil {
			return fmt.Errorf("invalid %s address: %w", name, err)
		}
	}
	if (c.Admin == "") != (c.FeeRecipient == "") {
		return fmt.Errorf("admin and fee_recipient must be set together")
	}

	if c.MetricsEnabled && c.MetricsAddress == "" {
		return fmt.Errorf("metrics_address is required when metrics are enabled")
	}
	return c.Tracing.Validate()
}

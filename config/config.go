package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/tendermint/ics10-grandpa/libs/log"
)

// NOTE: libs/cli must know to look in the config dir!
var (
	DefaultGrandpaDir = ".grandpa-light"
	defaultConfigDir  = "config"
	defaultDataDir    = "data"

	defaultConfigFileName = "config.toml"

	defaultConfigFilePath = filepath.Join(defaultConfigDir, defaultConfigFileName)
)

// Config defines the top level configuration for the light client CLI.
type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`

	// Options for the light clients
	Light *LightConfig `mapstructure:"light" toml:"light"`

	// Options for metrics reporting
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation" toml:"instrumentation"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(),
		Light:           DefaultLightConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// TestConfig returns a configuration that can be used for testing.
func TestConfig() *Config {
	return &Config{
		BaseConfig:      TestBaseConfig(),
		Light:           TestLightConfig(),
		Instrumentation: TestInstrumentationConfig(),
	}
}

// SetRoot sets the RootDir for all Config structs.
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.BaseConfig.ValidateBasic(); err != nil {
		return err
	}
	if err := cfg.Light.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [light] section: %w", err)
	}
	if err := cfg.Instrumentation.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [instrumentation] section: %w", err)
	}
	return nil
}

//-----------------------------------------------------------------------------
// BaseConfig

// BaseConfig defines the base configuration.
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home" toml:"-"`

	// Database backend: goleveldb | cleveldb | boltdb | rocksdb | badgerdb | memdb
	// Only goleveldb and memdb are built without build tags.
	DBBackend string `mapstructure:"db-backend" toml:"db-backend"`

	// Database directory
	DBPath string `mapstructure:"db-dir" toml:"db-dir"`

	// Output level for logging
	LogLevel string `mapstructure:"log-level" toml:"log-level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log-format" toml:"log-format"`
}

// DefaultBaseConfig returns a default base configuration.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		LogLevel:  log.LogLevelInfo,
		LogFormat: log.LogFormatPlain,
		DBBackend: "goleveldb",
		DBPath:    defaultDataDir,
	}
}

// TestBaseConfig returns a base configuration for testing.
func TestBaseConfig() BaseConfig {
	cfg := DefaultBaseConfig()
	cfg.DBBackend = "memdb"
	cfg.LogLevel = log.LogLevelDebug
	return cfg
}

// DBDir returns the full path to the database directory
func (cfg BaseConfig) DBDir() string {
	return rootify(cfg.DBPath, cfg.RootDir)
}

// ConfigFile returns the full path to the config.toml file
func (cfg BaseConfig) ConfigFile() string {
	return rootify(defaultConfigFilePath, cfg.RootDir)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg BaseConfig) ValidateBasic() error {
	switch cfg.LogFormat {
	case log.LogFormatPlain, log.LogFormatText, log.LogFormatJSON:
	default:
		return errors.New("unknown log format (must be 'plain', 'text' or 'json')")
	}
	switch cfg.LogLevel {
	case log.LogLevelDebug, log.LogLevelInfo, log.LogLevelWarn, log.LogLevelError:
	default:
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if cfg.DBBackend == "" {
		return errors.New("db-backend cannot be empty")
	}
	return nil
}

//-----------------------------------------------------------------------------
// LightConfig

// LightConfig defines the parameters of newly created light clients and of
// consensus state retention.
type LightConfig struct {
	// Trusting period assigned to clients created without one.
	TrustingPeriod time.Duration `mapstructure:"trusting-period" toml:"trusting-period"`

	// Maximum tolerated clock drift between headers and the local clock.
	MaxClockDrift time.Duration `mapstructure:"max-clock-drift" toml:"max-clock-drift"`

	// Number of consensus states kept per client. 0 keeps all of them.
	PruningSize uint16 `mapstructure:"pruning-size" toml:"pruning-size"`
}

// DefaultLightConfig returns a default light client configuration.
func DefaultLightConfig() *LightConfig {
	return &LightConfig{
		TrustingPeriod: 14 * 24 * time.Hour,
		MaxClockDrift:  10 * time.Second,
		PruningSize:    1000,
	}
}

// TestLightConfig returns a light client configuration for testing.
func TestLightConfig() *LightConfig {
	cfg := DefaultLightConfig()
	cfg.PruningSize = 10
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *LightConfig) ValidateBasic() error {
	if cfg.TrustingPeriod <= 0 {
		return errors.New("trusting-period must be positive")
	}
	if cfg.MaxClockDrift < 0 {
		return errors.New("max-clock-drift can't be negative")
	}
	return nil
}

//-----------------------------------------------------------------------------
// InstrumentationConfig

// InstrumentationConfig defines the configuration for metrics reporting.
type InstrumentationConfig struct {
	// When true, Prometheus metrics are written to PrometheusTextfile after
	// every command, in the node exporter textfile format.
	Prometheus bool `mapstructure:"prometheus" toml:"prometheus"`

	// Path of the metrics textfile, relative to the home directory.
	PrometheusTextfile string `mapstructure:"prometheus-textfile" toml:"prometheus-textfile"`

	// Instrumentation namespace.
	Namespace string `mapstructure:"namespace" toml:"namespace"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting.
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus:         false,
		PrometheusTextfile: filepath.Join(defaultDataDir, "metrics.prom"),
		Namespace:          "grandpa",
	}
}

// TestInstrumentationConfig returns a default configuration for metrics
// reporting.
func TestInstrumentationConfig() *InstrumentationConfig {
	return DefaultInstrumentationConfig()
}

// TextfilePath returns the full path of the metrics textfile.
func (cfg *InstrumentationConfig) TextfilePath(root string) string {
	return rootify(cfg.PrometheusTextfile, root)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *InstrumentationConfig) ValidateBasic() error {
	if cfg.Prometheus && cfg.PrometheusTextfile == "" {
		return errors.New("prometheus-textfile cannot be empty when prometheus is enabled")
	}
	return nil
}

//-----------------------------------------------------------------------------
// Utils

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

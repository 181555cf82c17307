package config

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	tmos "github.com/tendermint/ics10-grandpa/libs/os"
)

// defaultDirPerm is the default permissions used when creating directories.
const defaultDirPerm = 0700

const configHeader = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

# NOTE: Any path below can be absolute (e.g. "/var/grandpa/data") or
# relative to the home directory (e.g. "data"). The home directory is
# "$HOME/.grandpa-light" by default, but could be changed via $GRANDPA_HOME
# env variable or --home cmd flag.

`

// EnsureRoot creates the root, config, and data directories if they don't
// exist, and writes the default config file if there is none.
func EnsureRoot(rootDir string) error {
	for _, dir := range []string{rootDir, filepath.Join(rootDir, defaultConfigDir), filepath.Join(rootDir, defaultDataDir)} {
		if err := tmos.EnsureDir(dir, defaultDirPerm); err != nil {
			return err
		}
	}

	configFilePath := filepath.Join(rootDir, defaultConfigFilePath)
	if !tmos.FileExists(configFilePath) {
		return WriteConfigFile(rootDir, DefaultConfig())
	}
	return nil
}

// WriteConfigFile encodes config as TOML and writes it to the config file
// under rootDir.
func WriteConfigFile(rootDir string, config *Config) error {
	return config.WriteToFile(filepath.Join(rootDir, defaultConfigFilePath))
}

// WriteToFile writes the config to the exact file specified by the path.
func (cfg *Config) WriteToFile(path string) error {
	var buffer bytes.Buffer
	buffer.WriteString(configHeader)

	if err := toml.NewEncoder(&buffer).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return tmos.WriteFileAtomic(path, buffer.Bytes(), 0644)
}

// LoadConfigFile decodes the TOML file at path on top of the defaults.
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", path, err)
	}
	return cfg, nil
}

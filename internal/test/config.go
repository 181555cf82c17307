package test

import (
	"testing"

	"github.com/tendermint/ics10-grandpa/config"
)

// ResetTestRoot returns a test configuration rooted in a fresh temporary
// directory holding the default config file. modify, if not nil, edits the
// configuration before it is written.
func ResetTestRoot(t testing.TB, modify func(*config.Config)) *config.Config {
	t.Helper()

	cfg := config.TestConfig().SetRoot(t.TempDir())
	if modify != nil {
		modify(cfg)
	}
	if err := config.EnsureRoot(cfg.RootDir); err != nil {
		t.Fatal(err)
	}
	if err := config.WriteConfigFile(cfg.RootDir, cfg); err != nil {
		t.Fatal(err)
	}
	return cfg
}

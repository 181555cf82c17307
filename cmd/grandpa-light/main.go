package main

import (
	"os"
	"path/filepath"

	"github.com/tendermint/ics10-grandpa/cmd/grandpa-light/commands"
	"github.com/tendermint/ics10-grandpa/config"
)

func main() {
	cmd := commands.NewExecutor(os.ExpandEnv(filepath.Join("$HOME", config.DefaultGrandpaDir)))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

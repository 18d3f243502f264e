// Package cmd implements the gate subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/gate/cli"
	"github.com/grovetools/gate/config"
	"github.com/grovetools/gate/store"
)

// loadConfig resolves, parses, and validates the hook configuration for a
// command invocation.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	opts := cli.GetOptions(cmd)

	path, err := cli.InitConfig(opts.ConfigFile)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, path, nil
}

// openStore creates the pinned-clone store using the settings file's cache
// directory.
func openStore() (*store.Store, *config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	return store.New(settings.ResolveCacheDir()), settings, nil
}

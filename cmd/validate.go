package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/gate/cli"
	"github.com/grovetools/gate/config"
	"github.com/grovetools/gate/errors"
	"github.com/grovetools/gate/schema"
)

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the hook configuration file",
		Long: `Validate the hook configuration file without running anything.

Checks that the file parses, conforms to the configuration schema, and
satisfies the structural rules: every group names a repository, remote
groups pin a rev, local hooks carry an entry, and all patterns compile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			path, err := cli.InitConfig(opts.ConfigFile)
			if err != nil {
				return err
			}

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			validator, err := schema.NewValidator()
			if err != nil {
				return err
			}
			if err := validator.Validate(cfg); err != nil {
				return errors.Wrap(err, errors.ErrCodeConfigValidation, fmt.Sprintf("%s does not match the configuration schema", path))
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			fmt.Printf("%s is valid\n", path)
			return nil
		},
	}

	return cmd
}

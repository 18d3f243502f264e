package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const sampleConfig = `default_install_hook_types:
  - pre-commit
  - pre-push
repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.5.0
    hooks:
      - id: check-merge-conflict
      - id: end-of-file-fixer
      - id: trailing-whitespace
        args: [--markdown-linebreak-ext=md]
  - repo: local
    hooks:
      - id: no-debug-prints
        name: Forbid stray debug prints
        entry: scripts/check-debug-prints.sh
        language: script
        files: '\.py$'
`

func NewSampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-config",
		Short: "Print a starter hook configuration",
		Long: `Print a starter hook configuration to stdout.

Example:
  gate sample-config > .pre-commit-config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(sampleConfig)
			return nil
		},
	}
}

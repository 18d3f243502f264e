package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/grovetools/gate/cli"
	"github.com/grovetools/gate/config"
	"github.com/grovetools/gate/git"
	"github.com/grovetools/gate/runner"
)

func NewRunCmd() *cobra.Command {
	var allFiles bool
	var files []string
	var watch bool

	cmd := &cobra.Command{
		Use:   "run [hook-type]",
		Short: "Run the configured hooks for a git lifecycle event",
		Long: `Run the configured hooks for a git lifecycle event.

The hook-type argument defaults to pre-commit. For pre-commit the hooks
run against the staged files; for pre-push they run against the files of
the outgoing ref ranges read from stdin. Exits non-zero when any hook
fails, which is what makes an installed shim block the git operation.

Examples:
  # Run pre-commit hooks against the staged files
  gate run

  # Run every hook against every tracked file
  gate run --all-files

  # Re-run hooks whenever files change
  gate run --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event := config.HookTypePreCommit
			if len(args) == 1 {
				event = args[0]
			}
			if !config.IsKnownHookType(event) {
				return fmt.Errorf("unknown hook type '%s'", event)
			}

			cfg, configPath, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cli.GetLogger(cmd).WithField("config", configPath).Debug("Loaded hook configuration")

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			root, err := git.GetGitRoot(cwd)
			if err != nil {
				return err
			}

			st, settings, err := openStore()
			if err != nil {
				return err
			}

			opts := runner.Options{AllFiles: allFiles, Files: files}
			if event == config.HookTypePrePush && !isatty.IsTerminal(os.Stdin.Fd()) {
				ranges, err := git.ParsePushInput(os.Stdin)
				if err != nil {
					return err
				}
				opts.PushRanges = ranges
			}

			cliOpts := cli.GetOptions(cmd)
			reporter := cli.NewReporter(os.Stdout, settings.Color, cliOpts.JSONOutput)
			r := runner.New(root, cfg, st)

			if watch {
				return r.Watch(cmd.Context(), event, opts, func(result *runner.RunResult) {
					_ = reporter.Report(result)
				})
			}

			result, err := r.Run(cmd.Context(), event, opts)
			if err != nil {
				return err
			}
			if err := reporter.Report(result); err != nil {
				return err
			}
			if !result.Ok() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFiles, "all-files", false, "Run against every tracked file instead of the changed set")
	cmd.Flags().StringSliceVar(&files, "files", nil, "Run against these files only")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run hooks whenever files under the repository change")

	return cmd
}

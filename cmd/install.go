package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/gate/config"
	"github.com/grovetools/gate/git"
)

func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install gate shims into .git/hooks",
		Long: `Install gate shims into .git/hooks for the lifecycle events listed
under default_install_hook_types (pre-commit when unset). Existing
foreign hooks are backed up with a .pre-gate suffix and restored on
uninstall.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			root, err := git.GetGitRoot(cwd)
			if err != nil {
				return err
			}

			gateBinary, err := os.Executable()
			if err != nil {
				gateBinary = "gate"
			}

			hookTypes := cfg.InstallHookTypes()
			manager := git.NewHookManager(gateBinary)
			if err := manager.InstallHooks(cmd.Context(), root, hookTypes); err != nil {
				return err
			}

			fmt.Printf("Installed gate hooks: %s\n", strings.Join(hookTypes, ", "))
			return nil
		},
	}

	return cmd
}

func NewUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove gate shims from .git/hooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			root, err := git.GetGitRoot(cwd)
			if err != nil {
				return err
			}

			// Sweep every known event so shims survive config edits
			manager := git.NewHookManager("")
			if err := manager.UninstallHooks(cmd.Context(), root, config.AllHookTypes()); err != nil {
				return err
			}

			fmt.Println("Removed gate hooks")
			return nil
		},
	}

	return cmd
}

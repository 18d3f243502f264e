package main

import (
	"fmt"
	"os"

	"github.com/grovetools/gate/cli"
	"github.com/grovetools/gate/cmd"
)

func main() {
	// Settings-driven log config must land before any component logger
	// is created
	if err := cli.InitLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	rootCmd := cli.NewStandardCommand(
		"gate",
		"Pinned, declarative git hook runner",
	)

	rootCmd.AddCommand(cmd.NewInstallCmd())
	rootCmd.AddCommand(cmd.NewUninstallCmd())
	rootCmd.AddCommand(cmd.NewRunCmd())
	rootCmd.AddCommand(cmd.NewValidateCmd())
	rootCmd.AddCommand(cmd.NewSampleConfigCmd())
	rootCmd.AddCommand(cmd.NewGCCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}

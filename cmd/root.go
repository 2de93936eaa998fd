package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"setup-arch/internal/config"
	"setup-arch/internal/logger"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// configPath holds the path to an optional configuration YAML file overriding
// the built-in defaults. It's passed via the `--config` or `-c` flag.
var configPath string

// cfg is the immutable run configuration, built once before any subcommand
// executes and passed to every step from there.
var cfg config.Config

// rootCmd is the base command for the CLI tool `setup-arch`.
// It sets up the root-level CLI structure and provides global flags.
var rootCmd = &cobra.Command{
	Use:   "setup-arch",                          // The name of the CLI tool
	Short: "Arch Linux post-install provisioner", // Short description shown in help output

	// The sequencer already reports failures through the logger (terminal and
	// transcript), so cobra's own error/usage echo would only duplicate them.
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun is a hook that runs before any subcommand. The run
	// configuration and the target user are resolved exactly once here, and the
	// logger is pointed at the configured transcript file.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig(configPath)
		cfg.User = config.ResolveTargetUser()
		logger.Init(debug, cfg.LogFile)
	},
}

// Execute initializes flags, registers subcommands, and starts the command execution.
// It's the entry point for the CLI when invoked by the user. The process exits
// non-zero on any fatal provisioning failure or cancellation.
func Execute() {
	// Register the global flags before any command is executed.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to optional configuration file")

	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

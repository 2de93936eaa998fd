package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"setup-arch/internal/logger"
	"setup-arch/internal/provision"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// runCmd executes the full provisioning sequence: preflight, connectivity
// probe, core packages, AUR helper, AUR packages, user environment, sweep.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full provisioning sequence",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := sysexec.NewRunner(cfg.User.Name)

		if err := sequencer.Run(provision.Steps(cfg, runner, os.Stdin)); err != nil {
			return err
		}

		logger.Info("[INFO] Provisioning complete. A reboot is recommended.\n")
		if provision.PromptYesNo(os.Stdin, "Reboot now?") {
			out, err := runner.Run(sysexec.Invocation{Ctx: sysexec.System, Program: "reboot"})
			if err != nil {
				logger.Error("[ERROR] Reboot failed: %v\nOutput: %s\n", err, out)
			}
		} else {
			logger.Info("[INFO] Skipping reboot.\n")
		}
		return nil
	},
}

// The granular subcommands below re-run a single phase. The error model of the
// full run is "recovery is a manual re-run", and re-running everything after,
// say, one failed AUR package is needlessly slow — so each phase past the
// preflight is individually addressable. They still require root and still log
// to the transcript, but skip the interactive confirmation: the operator named
// the exact phase they want.

// runPackagesCmd re-runs only the core package installation.
var runPackagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Install only the core package set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhase("Core packages", func(r sysexec.Runner) sequencer.Result {
			return provision.InstallCore(cfg, r)
		})
	},
}

// runHelperCmd re-runs only the AUR helper bootstrap.
var runHelperCmd = &cobra.Command{
	Use:   "helper",
	Short: "Build and install only the AUR helper",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhase("AUR helper bootstrap", func(r sysexec.Runner) sequencer.Result {
			return provision.BootstrapHelper(cfg, r)
		})
	},
}

// runAurCmd re-runs only the secondary (AUR) package installation.
var runAurCmd = &cobra.Command{
	Use:   "aur",
	Short: "Install only the AUR package set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhase("AUR packages", func(r sysexec.Runner) sequencer.Result {
			return provision.InstallSecondary(cfg, r)
		})
	},
}

// runFinalizeCmd re-runs only the user environment finalization.
var runFinalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Set up only the user environment (shell, services, directories)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhase("User environment", func(r sysexec.Runner) sequencer.Result {
			return provision.Finalize(cfg, r)
		})
	},
}

// runCleanCmd re-runs only the maintenance sweep.
var runCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run only the maintenance sweep (orphans, caches)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhase("Maintenance sweep", func(r sysexec.Runner) sequencer.Result {
			return provision.Sweep(cfg, r)
		})
	},
}

// runPhase executes a single named phase under the sequencer, after the same
// privilege check the full run performs.
func runPhase(name string, phase func(sysexec.Runner) sequencer.Result) error {
	if err := provision.RequireRoot(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return err
	}

	runner := sysexec.NewRunner(cfg.User.Name)
	return sequencer.Run([]sequencer.Step{
		{Name: name, Run: func() sequencer.Result { return phase(runner) }},
	})
}

// init adds the run command and its phase subcommands to the root command.
func init() {
	runCmd.AddCommand(runPackagesCmd)
	runCmd.AddCommand(runHelperCmd)
	runCmd.AddCommand(runAurCmd)
	runCmd.AddCommand(runFinalizeCmd)
	runCmd.AddCommand(runCleanCmd)
	// Register the `run` command with the root command
	rootCmd.AddCommand(runCmd)
}

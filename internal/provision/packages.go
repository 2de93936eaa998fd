package provision

import (
	"fmt"

	"setup-arch/internal/config"
	"setup-arch/internal/logger"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// InstallCore installs the core package set in a single pacman transaction:
// refresh the package databases, upgrade, and install whatever is missing,
// all without prompting. pacman handles already-installed packages itself
// (--needed), which is what makes re-running the tool safe.
//
// An empty set is a successful no-op. A failed transaction is fatal: the core
// set is the foundation everything later builds on. pacman does not roll back
// partially completed work, so the failure message says so and the captured
// output lands in the log for diagnosis.
func InstallCore(cfg config.Config, r sysexec.Runner) sequencer.Result {
	if len(cfg.CorePackages) == 0 {
		logger.Info("[INFO] Core package set is empty. Nothing to install.\n")
		return sequencer.OK()
	}

	logger.Info("[INFO] Installing %d core packages with pacman...\n", len(cfg.CorePackages))

	args := append([]string{"-Syu", "--needed", "--noconfirm"}, cfg.CorePackages...)
	out, err := r.Run(sysexec.Invocation{Ctx: sysexec.System, Program: "pacman", Args: args})
	if err != nil {
		logger.Error("[ERROR] pacman output:\n%s\n", out)
		return sequencer.Fatal(fmt.Errorf(
			"core package installation failed: %w (packages installed before the failure are not rolled back)", err))
	}

	logger.Info("[INFO] Core packages installed.\n")
	return sequencer.OK()
}

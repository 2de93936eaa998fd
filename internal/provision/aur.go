package provision

import (
	"fmt"

	"setup-arch/internal/config"
	"setup-arch/internal/logger"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// InstallSecondary installs the AUR package set through the helper, running it
// as the target user the same way the user would interactively. These packages
// are conveniences, not foundations, so nothing here is fatal: a missing helper
// skips the whole set with a warning, and each package is installed in its own
// invocation so one broken PKGBUILD cannot take the rest down with it.
func InstallSecondary(cfg config.Config, r sysexec.Runner) sequencer.Result {
	if len(cfg.AurPackages) == 0 {
		logger.Info("[INFO] AUR package set is empty. Nothing to install.\n")
		return sequencer.OK()
	}

	if _, err := r.LookPath(cfg.Helper.Name); err != nil {
		return sequencer.Soft(fmt.Errorf(
			"%s is not installed; skipping %d AUR packages", cfg.Helper.Name, len(cfg.AurPackages)))
	}

	failed := 0
	for _, pkg := range cfg.AurPackages {
		logger.Info("[INFO] Installing %s from the AUR...\n", pkg)
		out, err := r.Run(sysexec.Invocation{
			Ctx:     sysexec.TargetUser,
			Program: cfg.Helper.Name,
			Args:    []string{"-S", "--needed", "--noconfirm", pkg},
		})
		if err != nil {
			logger.Warn("[WARN] Failed to install %s: %v\nOutput: %s\n", pkg, err, out)
			failed++
			continue
		}
		logger.Info("[INFO] Installed %s.\n", pkg)
	}

	if failed > 0 {
		return sequencer.Soft(fmt.Errorf("%d of %d AUR packages failed to install", failed, len(cfg.AurPackages)))
	}
	return sequencer.OK()
}

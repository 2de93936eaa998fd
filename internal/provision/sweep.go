package provision

import (
	"strings"

	"setup-arch/internal/config"
	"setup-arch/internal/logger"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// Sweep is the best-effort cleanup pass at the end of a run: orphaned packages,
// the pacman cache, and the helper's build cache. Nothing here may abort the
// run — the machine is already provisioned, and a failed cleanup only costs
// disk space — so every failure is logged and swallowed.
func Sweep(cfg config.Config, r sysexec.Runner) sequencer.Result {
	removeOrphans(r)
	purgeCaches(cfg, r)
	return sequencer.OK()
}

// removeOrphans queries pacman for packages nothing depends on anymore and
// removes them with their configs and unneeded dependencies.
func removeOrphans(r sysexec.Runner) {
	// pacman -Qtdq exits non-zero when there are no orphans; that is the happy
	// path on a fresh machine, not an error.
	out, err := r.Run(sysexec.Invocation{
		Ctx:     sysexec.System,
		Program: "pacman",
		Args:    []string{"-Qtdq"},
	})
	orphans := strings.Fields(strings.TrimSpace(string(out)))
	if err != nil || len(orphans) == 0 {
		logger.Info("[INFO] No orphaned packages to remove.\n")
		return
	}

	logger.Info("[INFO] Removing %d orphaned packages...\n", len(orphans))
	args := append([]string{"-Rns", "--noconfirm"}, orphans...)
	out, err = r.Run(sysexec.Invocation{Ctx: sysexec.System, Program: "pacman", Args: args})
	if err != nil {
		logger.Warn("[WARN] Orphan removal failed: %v\nOutput: %s\n", err, out)
		return
	}
	logger.Info("[INFO] Orphaned packages removed.\n")
}

// purgeCaches clears the pacman download cache of versions that no longer
// correspond to an installed package, and asks the helper to do the same for
// its build cache when it is installed.
func purgeCaches(cfg config.Config, r sysexec.Runner) {
	out, err := r.Run(sysexec.Invocation{
		Ctx:     sysexec.System,
		Program: "pacman",
		Args:    []string{"-Sc", "--noconfirm"},
	})
	if err != nil {
		logger.Warn("[WARN] pacman cache cleanup failed: %v\nOutput: %s\n", err, out)
	} else {
		logger.Info("[INFO] pacman cache cleaned.\n")
	}

	if _, err := r.LookPath(cfg.Helper.Name); err != nil {
		logger.Debug("[DEBUG] %s not installed, skipping its cache cleanup\n", cfg.Helper.Name)
		return
	}

	out, err = r.Run(sysexec.Invocation{
		Ctx:     sysexec.TargetUser,
		Program: cfg.Helper.Name,
		Args:    []string{"-Sc", "--noconfirm"},
	})
	if err != nil {
		logger.Warn("[WARN] %s cache cleanup failed: %v\nOutput: %s\n", cfg.Helper.Name, err, out)
	} else {
		logger.Info("[INFO] %s cache cleaned.\n", cfg.Helper.Name)
	}
}

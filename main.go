package main

import (
	"setup-arch/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The setup-arch project is a post-install provisioner for fresh Arch Linux machines that:
//   - Verifies root privileges and asks for explicit confirmation before touching anything,
//     since the run installs packages, changes the login shell, and enables services
//   - Checks network reachability up front so connectivity problems are reported distinctly
//     from package-manager failures
//   - Installs a core package set with pacman in a single non-interactive transaction
//   - Builds and installs an AUR helper from source under the invoking (non-root) user,
//     because makepkg refuses to run as root
//   - Installs a secondary AUR package set through the helper, tolerating per-package failures
//   - Finalizes the user environment: default shell, service enablement, XDG user directories
//   - Sweeps up afterwards: orphaned packages, pacman cache, helper build cache
//
// Error handling strategy:
//   - Fatal failures (privilege check, cancellation, connectivity, core install, helper
//     bootstrap) halt the run immediately with a non-zero exit status
//   - Soft failures (secondary packages, shell change, display-manager enablement) are
//     logged with a warning and the run continues
//   - Everything printed to the terminal is duplicated into a log file for later inspection
//
// Integration points:
//   - pacman for official-repository packages and cache/orphan maintenance
//   - git + makepkg for the AUR helper build, run via sudo -u under the target user
//   - systemctl for service enablement, chsh for the login shell,
//     xdg-user-dirs-update for user directories
//
// The run is intentionally not transactional: partial completion is an accepted outcome
// and recovery is a manual re-run (individual phases are exposed as subcommands for that).
func main() {
	cmd.Execute()
}

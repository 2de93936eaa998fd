package provision

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"setup-arch/internal/config"
	"setup-arch/internal/logger"
	"setup-arch/internal/sequencer"
)

// euid reports the effective user id. A variable so tests can simulate running
// without privileges.
var euid = os.Geteuid

// RequireRoot verifies the process holds root privileges. Every mutating command
// either needs root directly (pacman, systemctl) or needs root to drop to the
// target user (sudo -u), so nothing useful can happen without it.
func RequireRoot() error {
	if euid() != 0 {
		return errors.New("this tool must be run as root (try: sudo setup-arch run)")
	}
	return nil
}

// Preflight is the first step of the run: privilege check, then an explicit
// confirmation of the destructive effects. No mutation happens anywhere before
// this returns success.
func Preflight(cfg config.Config, in io.Reader) sequencer.Result {
	if err := RequireRoot(); err != nil {
		return sequencer.Fatal(err)
	}

	logger.Warn("[WARN] This run will install packages, build %s from the AUR,\n", cfg.Helper.Name)
	logger.Warn("[WARN] change the login shell for %q and enable system services.\n", cfg.User.Name)
	logger.Warn("[WARN] These changes are not rolled back on failure.\n")

	if !PromptYesNo(in, "Proceed with provisioning?") {
		return sequencer.Fatal(errors.New("cancelled by operator"))
	}
	return sequencer.OK()
}

// PromptYesNo asks a yes/no question on the terminal and reads one line from in.
// Only an explicit "y"/"yes" (case-insensitive) counts as affirmative; anything
// else — including EOF and a bare Enter — is a no. Defaulting to no keeps an
// accidental keypress from kicking off a system-wide install.
func PromptYesNo(in io.Reader, question string) bool {
	logger.Info("%s [y/N]: ", question)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

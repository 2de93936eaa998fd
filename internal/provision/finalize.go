package provision

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"setup-arch/internal/config"
	"setup-arch/internal/logger"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// shellsFile is the registry of allowed login shells. A variable so tests can
// point it at a fixture.
var shellsFile = "/etc/shells"

// Finalize sets up the target user's environment: login shell, system services
// and XDG user directories. The three sub-operations are independent and each is
// tolerated to fail — by this point the package work is done and a chsh hiccup
// is no reason to declare the whole run dead.
//
// If the target user does not exist there is no environment to finalize; the
// step logs an error and yields, without aborting the run.
func Finalize(cfg config.Config, r sysexec.Runner) sequencer.Result {
	if !cfg.User.Exists {
		logger.Error("[ERROR] Target user %q does not exist. Skipping user environment setup.\n", cfg.User.Name)
		return sequencer.Soft(fmt.Errorf("target user %q does not exist", cfg.User.Name))
	}

	failed := 0
	if err := setLoginShell(cfg, r); err != nil {
		logger.Warn("[WARN] Login shell not changed: %v\n", err)
		failed++
	}
	failed += enableServices(cfg, r)
	if err := initUserDirs(cfg, r); err != nil {
		logger.Warn("[WARN] XDG user directories not initialized: %v\n", err)
		failed++
	}

	if failed > 0 {
		return sequencer.Soft(fmt.Errorf("%d finalization sub-steps failed", failed))
	}
	return sequencer.OK()
}

// setLoginShell changes the target user's login shell to the configured one,
// but only when that shell is registered in /etc/shells and actually differs
// from the current shell — chsh to an unregistered shell would lock the user
// out of logging in.
func setLoginShell(cfg config.Config, r sysexec.Runner) error {
	if cfg.Shell == "" {
		return nil
	}

	allowed, err := shellAllowed(cfg.Shell)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", shellsFile, err)
	}
	if !allowed {
		return fmt.Errorf("%s is not listed in %s", cfg.Shell, shellsFile)
	}

	current, err := currentLoginShell(cfg.User.Name, r)
	if err != nil {
		return err
	}
	if current == cfg.Shell {
		logger.Info("[INFO] Login shell for %s is already %s. Skipping.\n", cfg.User.Name, cfg.Shell)
		return nil
	}

	out, err := r.Run(sysexec.Invocation{
		Ctx:     sysexec.System,
		Program: "chsh",
		Args:    []string{"-s", cfg.Shell, cfg.User.Name},
	})
	if err != nil {
		return fmt.Errorf("chsh failed: %w (output: %s)", err, out)
	}

	logger.Info("[INFO] Changed login shell for %s to %s.\n", cfg.User.Name, cfg.Shell)
	return nil
}

// shellAllowed reports whether shell appears in the allowed-shells registry.
func shellAllowed(shell string) (bool, error) {
	f, err := os.Open(shellsFile)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == shell {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// currentLoginShell looks up the user's current shell from the passwd database.
func currentLoginShell(username string, r sysexec.Runner) (string, error) {
	out, err := r.Run(sysexec.Invocation{
		Ctx:     sysexec.System,
		Program: "getent",
		Args:    []string{"passwd", username},
	})
	if err != nil {
		return "", fmt.Errorf("getent passwd %s failed: %w", username, err)
	}

	// passwd format: name:passwd:uid:gid:gecos:home:shell
	fields := strings.Split(strings.TrimSpace(string(out)), ":")
	if len(fields) < 7 {
		return "", fmt.Errorf("unexpected passwd entry for %s: %q", username, strings.TrimSpace(string(out)))
	}
	return fields[6], nil
}

// enableServices enables the networking and display-manager units. The network
// service failing is surfaced at error level — a machine that cannot come online
// after reboot is a real problem — but it is still tolerated: the connectivity
// probe already passed, so the current session is usable and the operator can
// intervene. The display manager is cosmetic and only warned about. Returns the
// number of failures.
func enableServices(cfg config.Config, r sysexec.Runner) int {
	failed := 0

	if cfg.Services.Network != "" {
		out, err := r.Run(sysexec.Invocation{
			Ctx:     sysexec.System,
			Program: "systemctl",
			Args:    []string{"enable", cfg.Services.Network},
		})
		if err != nil {
			logger.Error("[ERROR] Failed to enable %s: %v\nOutput: %s\n", cfg.Services.Network, err, out)
			logger.Error("[ERROR] The machine may have no network after reboot. Enable it manually.\n")
			failed++
		} else {
			logger.Info("[INFO] Enabled %s.\n", cfg.Services.Network)
		}
	}

	if cfg.Services.Display != "" {
		out, err := r.Run(sysexec.Invocation{
			Ctx:     sysexec.System,
			Program: "systemctl",
			Args:    []string{"enable", cfg.Services.Display},
		})
		if err != nil {
			logger.Warn("[WARN] Failed to enable %s: %v\nOutput: %s\n", cfg.Services.Display, err, out)
			failed++
		} else {
			logger.Info("[INFO] Enabled %s.\n", cfg.Services.Display)
		}
	}

	return failed
}

// initUserDirs creates the XDG user directories (Documents, Downloads, ...) in
// the target user's home, overwriting any existing configuration. Must run as
// the user: the directories and the config they leave behind belong to them.
func initUserDirs(cfg config.Config, r sysexec.Runner) error {
	out, err := r.Run(sysexec.Invocation{
		Ctx:     sysexec.TargetUser,
		Program: "xdg-user-dirs-update",
		Args:    []string{"--force"},
	})
	if err != nil {
		return fmt.Errorf("xdg-user-dirs-update failed: %w (output: %s)", err, out)
	}

	logger.Info("[INFO] XDG user directories initialized for %s.\n", cfg.User.Name)
	return nil
}

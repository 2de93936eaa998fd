package config

// Helper describes the AUR helper that gets built from source during provisioning.
// - Name: binary name used for presence checks and secondary installs (e.g., yay).
// - CloneURL: upstream git repository holding the PKGBUILD.
// - SnapshotURL: AUR snapshot tarball, used as a fallback when the clone fails.
type Helper struct {
	Name        string `yaml:"name"`
	CloneURL    string `yaml:"clone_url"`
	SnapshotURL string `yaml:"snapshot_url"`
}

// Services lists the systemd units enabled during finalization.
// - Network: the networking service; the machine is headless without it, so a
//   failure here is surfaced prominently.
// - Display: the display manager; purely cosmetic on a server, tolerated to fail.
type Services struct {
	Network string `yaml:"network"`
	Display string `yaml:"display"`
}

// Probe configures the pre-install connectivity check.
// - URL: well-known external address to reach.
// - TimeoutSeconds: upper bound on the whole check, keeping a dead network from
//   hanging the run indefinitely.
type Probe struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// User identifies the non-root account the machine is being provisioned for.
// System-wide mutations run as root, but the helper build and per-user
// configuration must run as this user.
type User struct {
	Name   string // Login name, resolved from SUDO_USER or logname
	Home   string // Home directory from the passwd database
	Exists bool   // False when the account could not be found; user-bound steps then skip or fail
}

// Config is the immutable run configuration, built once at startup and passed to
// every step. Nothing reads ambient process state after this point, which keeps the
// privileged/unprivileged split explicit and the steps testable.
type Config struct {
	CorePackages []string `yaml:"core_packages"` // Installed with pacman, fatal on failure
	AurPackages  []string `yaml:"aur_packages"`  // Installed with the helper, best effort
	Helper       Helper   `yaml:"helper"`
	Shell        string   `yaml:"shell"` // Desired login shell path for the target user
	Services     Services `yaml:"services"`
	Probe        Probe    `yaml:"probe"`
	LogFile      string   `yaml:"log_file"` // Transcript path, terminal output is duplicated here
	User         User     `yaml:"-"`        // Resolved at startup, never from YAML
}

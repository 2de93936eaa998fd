package config

import (
	"os"
	"os/exec"
	"os/user"
	"strings"
)

// ResolveTargetUser determines which non-root account the machine is being set up
// for. The tool itself runs under sudo, so SUDO_USER normally names the invoking
// human; when it is absent (e.g., a root login shell), `logname` answers "who is
// logged in on this terminal" as a fallback.
//
// The returned User always carries a name and a home directory guess; Exists is
// only true when the account is actually present in the passwd database. Steps
// that must run as the target user decide for themselves how to react to a
// missing account.
func ResolveTargetUser() User {
	name := os.Getenv("SUDO_USER")
	if name == "" || name == "root" {
		out, err := exec.Command("logname").Output()
		if err == nil {
			name = strings.TrimSpace(string(out))
		}
	}
	if name == "" || name == "root" {
		// No usable non-root identity; user-bound steps will skip.
		return User{}
	}

	u, err := user.Lookup(name)
	if err != nil {
		// Account name known but not in passwd — keep the name so messages stay
		// meaningful, guess the conventional home path.
		return User{Name: name, Home: "/home/" + name, Exists: false}
	}

	return User{Name: name, Home: u.HomeDir, Exists: true}
}

package provision

import (
	"io"

	"setup-arch/internal/config"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// Steps assembles the full provisioning sequence in its fixed order. The
// confirmation prompt reads from in (stdin in production, a scripted reader in
// tests), and every system mutation goes through r.
func Steps(cfg config.Config, r sysexec.Runner, in io.Reader) []sequencer.Step {
	return []sequencer.Step{
		{Name: "Preflight checks", Run: func() sequencer.Result { return Preflight(cfg, in) }},
		{Name: "Connectivity probe", Run: func() sequencer.Result { return CheckNetwork(cfg) }},
		{Name: "Core packages", Run: func() sequencer.Result { return InstallCore(cfg, r) }},
		{Name: "AUR helper bootstrap", Run: func() sequencer.Result { return BootstrapHelper(cfg, r) }},
		{Name: "AUR packages", Run: func() sequencer.Result { return InstallSecondary(cfg, r) }},
		{Name: "User environment", Run: func() sequencer.Result { return Finalize(cfg, r) }},
		{Name: "Maintenance sweep", Run: func() sequencer.Result { return Sweep(cfg, r) }},
	}
}

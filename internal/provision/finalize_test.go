package provision

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"setup-arch/internal/config"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// withShells points the allowed-shells registry at a fixture for the test.
// Tests using it must not run in parallel (shared package variable).
func withShells(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shells")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	old := shellsFile
	shellsFile = path
	t.Cleanup(func() { shellsFile = old })
}

// finalizeConfig returns a config with an existing target user.
func finalizeConfig() config.Config {
	cfg := config.Defaults()
	cfg.User = config.User{Name: "alice", Home: "/home/alice", Exists: true}
	return cfg
}

// passwdRunner returns a fake whose getent reports the given current shell.
func passwdRunner(shell string) *fakeRunner {
	return &fakeRunner{
		output: map[string]string{
			"getent passwd": "alice:x:1000:1000::/home/alice:" + shell + "\n",
		},
	}
}

// TestFinalizeMissingUserSkipsEverything verifies a nonexistent target user
// skips the whole finalizer as a soft failure, with zero commands run.
func TestFinalizeMissingUserSkipsEverything(t *testing.T) {
	cfg := config.Defaults()
	cfg.User = config.User{Name: "ghost", Exists: false}
	f := &fakeRunner{}

	res := Finalize(cfg, f)
	require.Equal(t, sequencer.SoftFailure, res.Status)
	require.ErrorContains(t, res.Err, "does not exist")
	require.Empty(t, f.calls)
}

// TestFinalizeChangesShell verifies chsh runs when the registered shell differs
// from the current one, and that the system-side operations stay privileged
// while the XDG initializer drops to the user.
func TestFinalizeChangesShell(t *testing.T) {
	withShells(t, "# /etc/shells\n/bin/bash\n/bin/zsh\n")

	cfg := finalizeConfig()
	f := passwdRunner("/bin/bash")

	res := Finalize(cfg, f)
	require.Equal(t, sequencer.Success, res.Status)

	chsh := f.callsTo("chsh")
	require.Len(t, chsh, 1)
	require.Equal(t, sysexec.System, chsh[0].Ctx)
	require.Equal(t, []string{"-s", "/bin/zsh", "alice"}, chsh[0].Args)

	systemctl := f.callsTo("systemctl")
	require.Len(t, systemctl, 2)
	require.Equal(t, []string{"enable", "NetworkManager"}, systemctl[0].Args)
	require.Equal(t, []string{"enable", "sddm"}, systemctl[1].Args)
	for _, inv := range systemctl {
		require.Equal(t, sysexec.System, inv.Ctx)
	}

	xdg := f.callsTo("xdg-user-dirs-update")
	require.Len(t, xdg, 1)
	require.Equal(t, sysexec.TargetUser, xdg[0].Ctx)
	require.Equal(t, []string{"--force"}, xdg[0].Args)
}

// TestFinalizeShellAlreadySet verifies the shell change is skipped when the
// current shell already matches — the idempotent re-run case.
func TestFinalizeShellAlreadySet(t *testing.T) {
	withShells(t, "/bin/zsh\n")

	cfg := finalizeConfig()
	f := passwdRunner("/bin/zsh")

	res := Finalize(cfg, f)
	require.Equal(t, sequencer.Success, res.Status)
	require.Empty(t, f.callsTo("chsh"))
}

// TestFinalizeUnregisteredShellIsSoft verifies a shell missing from the
// registry is reported softly and never passed to chsh.
func TestFinalizeUnregisteredShellIsSoft(t *testing.T) {
	withShells(t, "/bin/bash\n")

	cfg := finalizeConfig()
	f := passwdRunner("/bin/bash")

	res := Finalize(cfg, f)
	require.Equal(t, sequencer.SoftFailure, res.Status)
	require.Empty(t, f.callsTo("chsh"))
	// The other sub-operations still ran.
	require.Len(t, f.callsTo("systemctl"), 2)
	require.Len(t, f.callsTo("xdg-user-dirs-update"), 1)
}

// TestFinalizeServiceFailureIsSoft verifies a failing systemctl enable does not
// stop the remaining sub-operations.
func TestFinalizeServiceFailureIsSoft(t *testing.T) {
	withShells(t, "/bin/zsh\n")

	cfg := finalizeConfig()
	f := passwdRunner("/bin/zsh")
	f.failWhen = func(inv sysexec.Invocation) error {
		if inv.Program == "systemctl" {
			return errors.New("exit status 1")
		}
		return nil
	}

	res := Finalize(cfg, f)
	require.Equal(t, sequencer.SoftFailure, res.Status)
	require.Len(t, f.callsTo("xdg-user-dirs-update"), 1, "XDG init must still run")
}

package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"setup-arch/internal/config"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// TestInstallCoreEmptySetIsNoOp verifies an empty package set succeeds without
// invoking the package manager at all.
func TestInstallCoreEmptySetIsNoOp(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.CorePackages = nil
	f := &fakeRunner{}

	res := InstallCore(cfg, f)
	require.Equal(t, sequencer.Success, res.Status)
	require.Empty(t, f.calls)
}

// TestInstallCoreSingleTransaction verifies the whole set goes to pacman in one
// privileged, non-interactive, refresh-first invocation.
func TestInstallCoreSingleTransaction(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.CorePackages = []string{"zsh", "htop"}
	f := &fakeRunner{}

	res := InstallCore(cfg, f)
	require.Equal(t, sequencer.Success, res.Status)
	require.Len(t, f.calls, 1)

	inv := f.calls[0]
	require.Equal(t, "pacman", inv.Program)
	require.Equal(t, sysexec.System, inv.Ctx)
	require.Equal(t, []string{"-Syu", "--needed", "--noconfirm", "zsh", "htop"}, inv.Args)
}

// TestInstallCoreFailureIsFatal verifies a failed transaction halts the run.
func TestInstallCoreFailureIsFatal(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	f := &fakeRunner{
		fail:   map[string]error{"pacman -Syu": errors.New("exit status 1")},
		output: map[string]string{"pacman -Syu": "error: target not found"},
	}

	res := InstallCore(cfg, f)
	require.Equal(t, sequencer.FatalFailure, res.Status)
	require.ErrorContains(t, res.Err, "core package installation failed")
}

package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"setup-arch/internal/config"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// TestInstallSecondaryMissingHelperSkips verifies a missing helper binary is a
// soft skip, with no installation attempted.
func TestInstallSecondaryMissingHelperSkips(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	f := &fakeRunner{} // yay not present

	res := InstallSecondary(cfg, f)
	require.Equal(t, sequencer.SoftFailure, res.Status)
	require.ErrorContains(t, res.Err, "yay is not installed")
	require.Empty(t, f.calls)
}

// TestInstallSecondaryEmptySetIsNoOp verifies an empty AUR set succeeds
// without touching the helper.
func TestInstallSecondaryEmptySetIsNoOp(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.AurPackages = nil
	f := &fakeRunner{present: map[string]bool{"yay": true}}

	res := InstallSecondary(cfg, f)
	require.Equal(t, sequencer.Success, res.Status)
	require.Empty(t, f.calls)
}

// TestInstallSecondaryPerPackageIsolation verifies one failing package does not
// stop the rest from being attempted, and the step stays soft.
func TestInstallSecondaryPerPackageIsolation(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.AurPackages = []string{"spotify", "timeshift", "slack-desktop"}
	f := &fakeRunner{present: map[string]bool{"yay": true}}
	f.failWhen = func(inv sysexec.Invocation) error {
		if inv.Args[len(inv.Args)-1] == "timeshift" {
			return errors.New("exit status 1")
		}
		return nil
	}

	res := InstallSecondary(cfg, f)
	require.Equal(t, sequencer.SoftFailure, res.Status)
	require.ErrorContains(t, res.Err, "1 of 3")
	require.Len(t, f.calls, 3, "every package must be attempted")
}

// TestInstallSecondaryRunsAsTargetUser verifies the helper is always invoked
// under the target user's context, one non-interactive call per package.
func TestInstallSecondaryRunsAsTargetUser(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.AurPackages = []string{"spotify", "timeshift"}
	f := &fakeRunner{present: map[string]bool{"yay": true}}

	res := InstallSecondary(cfg, f)
	require.Equal(t, sequencer.Success, res.Status)
	require.Len(t, f.calls, 2)

	for _, inv := range f.calls {
		require.Equal(t, "yay", inv.Program)
		require.Equal(t, sysexec.TargetUser, inv.Ctx)
		require.Contains(t, inv.Args, "--noconfirm")
		require.Contains(t, inv.Args, "--needed")
	}
}

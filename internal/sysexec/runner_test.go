package sysexec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestContextString pins the labels used in debug logs.
func TestContextString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "system", System.String())
	require.Equal(t, "user", TargetUser.String())
}

// TestInvocationString renders like a shell command line.
func TestInvocationString(t *testing.T) {
	t.Parallel()

	inv := Invocation{Program: "pacman", Args: []string{"-S", "--noconfirm", "zsh"}}
	require.Equal(t, "pacman -S --noconfirm zsh", inv.String())
}

// TestExecRunnerSystemContext verifies a System invocation runs directly and
// its combined output comes back.
func TestExecRunnerSystemContext(t *testing.T) {
	t.Parallel()

	r := NewRunner("nobody")
	out, err := r.Run(Invocation{Ctx: System, Program: "sh", Args: []string{"-c", "echo hello"}})
	require.NoError(t, err)
	require.Equal(t, "hello", strings.TrimSpace(string(out)))
}

// TestExecRunnerHonorsDir verifies the working directory of an invocation.
func TestExecRunnerHonorsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := NewRunner("nobody")
	out, err := r.Run(Invocation{Ctx: System, Program: "sh", Args: []string{"-c", "pwd"}, Dir: dir})
	require.NoError(t, err)
	require.Contains(t, strings.TrimSpace(string(out)), dir)
}

// TestExecRunnerCapturesFailureOutput verifies stderr is part of the captured
// output on failure, since that is what lands in the transcript.
func TestExecRunnerCapturesFailureOutput(t *testing.T) {
	t.Parallel()

	r := NewRunner("nobody")
	out, err := r.Run(Invocation{Ctx: System, Program: "sh", Args: []string{"-c", "echo doom >&2; exit 3"}})
	require.Error(t, err)
	require.Contains(t, string(out), "doom")
}

// TestExecRunnerLookPath verifies presence checks against PATH.
func TestExecRunnerLookPath(t *testing.T) {
	t.Parallel()

	r := NewRunner("nobody")
	_, err := r.LookPath("sh")
	require.NoError(t, err)
	_, err = r.LookPath("definitely-not-a-binary-xyz")
	require.Error(t, err)
}

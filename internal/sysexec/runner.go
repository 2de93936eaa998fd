package sysexec

import (
	"os/exec"
	"strings"

	"setup-arch/internal/logger"
)

// Context is the effective identity a command must run under. The provisioner
// itself runs as root; package-manager and service-manager calls stay in that
// identity, while anything touching the target user's home (the helper build,
// user-directory setup) must drop to that user. Getting this wrong does not
// degrade gracefully — makepkg refuses to run as root and pacman refuses to run
// without it — so the context is part of every invocation rather than something
// each step improvises.
type Context int

const (
	// System runs the command as the privileged (root) identity.
	System Context = iota
	// TargetUser runs the command as the resolved non-root user via sudo -u.
	TargetUser
)

// String returns a short label for log lines.
func (c Context) String() string {
	if c == TargetUser {
		return "user"
	}
	return "system"
}

// Invocation is one external command together with the context it requires.
// Steps declare these as data; the runner owns the actual context switch.
type Invocation struct {
	Ctx     Context
	Program string
	Args    []string
	Dir     string // working directory; empty inherits the process's
}

// String renders the invocation the way it would appear on a shell command line,
// used in debug logs and error messages.
func (inv Invocation) String() string {
	return inv.Program + " " + strings.Join(inv.Args, " ")
}

// Runner executes invocations. The production implementation shells out; tests
// substitute a recording fake to observe exactly which commands a step would run
// and under which identity.
type Runner interface {
	// Run executes the invocation to completion and returns its combined
	// stdout/stderr. A non-nil error means the command failed to start or
	// exited non-zero.
	Run(inv Invocation) ([]byte, error)

	// LookPath reports the path of an executable in PATH, or an error when it
	// is not installed. Used for optional-tool presence checks.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner. It executes System invocations directly
// (the process is already root) and wraps TargetUser invocations in
// `sudo -u <user> -H`, so the command sees the user's identity and HOME.
type ExecRunner struct {
	// User is the login name all TargetUser invocations run as.
	User string
}

// NewRunner returns an ExecRunner bound to the given target user.
func NewRunner(targetUser string) *ExecRunner {
	return &ExecRunner{User: targetUser}
}

// Run executes the invocation, blocking until it completes, and returns its
// combined output. Output capture is deliberate: failures embed the command's
// own diagnostics in the log instead of losing them.
func (r *ExecRunner) Run(inv Invocation) ([]byte, error) {
	var cmd *exec.Cmd
	switch inv.Ctx {
	case TargetUser:
		sudoArgs := append([]string{"-u", r.User, "-H", inv.Program}, inv.Args...)
		cmd = exec.Command("sudo", sudoArgs...)
	default:
		cmd = exec.Command(inv.Program, inv.Args...)
	}
	cmd.Dir = inv.Dir

	logger.Debug("[DEBUG] Running (%s): %s\n", inv.Ctx, strings.Join(cmd.Args, " "))
	return cmd.CombinedOutput()
}

// LookPath delegates to exec.LookPath.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

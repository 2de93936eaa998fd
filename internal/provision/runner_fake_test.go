package provision

import (
	"errors"

	"setup-arch/internal/sysexec"
)

// fakeRunner records every invocation instead of executing it, so tests can
// assert exactly which commands a step would run and under which identity.
// Behavior is scripted per "program arg0" key; failWhen allows finer-grained
// failures (e.g., a single package out of a set).
type fakeRunner struct {
	calls   []sysexec.Invocation
	present map[string]bool   // LookPath results: name -> installed
	fail    map[string]error  // key(inv) -> error to return
	output  map[string]string // key(inv) -> combined output

	failWhen func(sysexec.Invocation) error
	onRun    func(sysexec.Invocation)
}

// key identifies an invocation by its program and first argument, which is
// enough to tell pacman -Syu from pacman -Qtdq in scripted behavior.
func key(inv sysexec.Invocation) string {
	if len(inv.Args) == 0 {
		return inv.Program
	}
	return inv.Program + " " + inv.Args[0]
}

func (f *fakeRunner) Run(inv sysexec.Invocation) ([]byte, error) {
	f.calls = append(f.calls, inv)
	if f.onRun != nil {
		f.onRun(inv)
	}
	out := []byte(f.output[key(inv)])
	if f.failWhen != nil {
		if err := f.failWhen(inv); err != nil {
			return out, err
		}
	}
	return out, f.fail[key(inv)]
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.present[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

// callsTo returns the recorded invocations of a given program.
func (f *fakeRunner) callsTo(program string) []sysexec.Invocation {
	var matched []sysexec.Invocation
	for _, inv := range f.calls {
		if inv.Program == program {
			matched = append(matched, inv)
		}
	}
	return matched
}

package sequencer

// Status classifies the outcome of one provisioning step. The distinction drives
// all control flow: fatal failures halt the run, soft failures are reported and
// skipped over. Steps never decide continuation themselves — they only report.
type Status int

const (
	// Success means the step completed (including "nothing to do").
	Success Status = iota
	// SoftFailure means the step failed but the system is still worth finishing;
	// the sequencer logs a warning and continues.
	SoftFailure
	// FatalFailure means continuing would build on a broken foundation; the
	// sequencer aborts the run immediately.
	FatalFailure
)

// String returns a human-readable label, used in log lines.
func (s Status) String() string {
	switch s {
	case SoftFailure:
		return "soft failure"
	case FatalFailure:
		return "fatal failure"
	default:
		return "success"
	}
}

// Result is what every step returns: a status plus the underlying error for the
// two failure variants.
type Result struct {
	Status Status
	Err    error
}

// OK reports a successful step.
func OK() Result {
	return Result{Status: Success}
}

// Soft reports a tolerable failure; the run continues.
func Soft(err error) Result {
	return Result{Status: SoftFailure, Err: err}
}

// Fatal reports an unrecoverable failure; the run stops here.
func Fatal(err error) Result {
	return Result{Status: FatalFailure, Err: err}
}

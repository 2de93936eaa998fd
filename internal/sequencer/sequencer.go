package sequencer

import (
	"fmt"

	"setup-arch/internal/logger"
)

// Step is one named phase of the provisioning run. Run performs the phase's
// side effects and classifies its outcome; it never exits the process itself.
type Step struct {
	Name string
	Run  func() Result
}

// Run executes the steps strictly in order.
//
// A FatalFailure halts the run immediately: no later step executes, and no
// cleanup beyond what the failing step itself performed is attempted — partial
// completion is an accepted outcome, recovered by re-running the tool. A
// SoftFailure is logged with a warning and execution continues. The returned
// error is non-nil exactly when a fatal failure occurred.
func Run(steps []Step) error {
	for _, step := range steps {
		logger.Info("[INFO] --- %s ---\n", step.Name)

		res := step.Run()
		switch res.Status {
		case FatalFailure:
			logger.Error("[ERROR] %s: %v\n", step.Name, res.Err)
			logger.Error("[ERROR] Aborting: later steps were not attempted.\n")
			return fmt.Errorf("%s: %w", step.Name, res.Err)
		case SoftFailure:
			logger.Warn("[WARN] %s: %v (continuing)\n", step.Name, res.Err)
		default:
			logger.Debug("[DEBUG] %s completed\n", step.Name)
		}
	}
	return nil
}

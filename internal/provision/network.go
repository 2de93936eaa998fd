package provision

import (
	"fmt"
	"net/http"
	"time"

	"setup-arch/internal/config"
	"setup-arch/internal/logger"
	"setup-arch/internal/sequencer"
)

// CheckNetwork verifies the machine can reach the outside world before any
// package operation starts. Without this, a dead uplink would surface later as a
// confusing pacman failure; probing first keeps the two cases distinct for the
// operator. Any HTTP response counts as reachable — we only care that packets
// make it out and back, not what the server says.
func CheckNetwork(cfg config.Config) sequencer.Result {
	timeout := time.Duration(cfg.Probe.TimeoutSeconds) * time.Second
	client := &http.Client{Timeout: timeout}

	logger.Debug("[DEBUG] Probing %s (timeout %s)\n", cfg.Probe.URL, timeout)
	resp, err := client.Head(cfg.Probe.URL)
	if err != nil {
		return sequencer.Fatal(fmt.Errorf("no network connectivity (cannot reach %s): %w", cfg.Probe.URL, err))
	}
	if cerr := resp.Body.Close(); cerr != nil {
		logger.Debug("[DEBUG] Failed to close probe response body: %v\n", cerr)
	}

	logger.Info("[INFO] Network is reachable (%s).\n", cfg.Probe.URL)
	return sequencer.OK()
}

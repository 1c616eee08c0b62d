package preflight

import (
	"context"
	"net/http"
	"time"

	"marquee/internal/config"
	"marquee/internal/trackers"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the directory checks and one check per enabled tracker.
// A nil client uses a 5 second timeout.
func RunAll(ctx context.Context, cfg *config.Config, registry *trackers.Registry, client *http.Client) []Result {
	if cfg == nil {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Scratch directory", cfg.Paths.TmpDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	for _, name := range cfg.EnabledTrackers() {
		tcfg, _ := cfg.Tracker(name)
		uploadURL := ""
		if registry != nil {
			if t, ok := registry.Get(name); ok {
				uploadURL = t.UploadURL()
			}
		}
		results = append(results, CheckTracker(ctx, client, name, tcfg, uploadURL))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

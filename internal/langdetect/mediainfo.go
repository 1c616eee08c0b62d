package langdetect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"marquee/internal/meta"
)

// Prober produces a mediainfo report for a file.
type Prober interface {
	Probe(ctx context.Context, path string) (*meta.MediaInfo, error)
}

// CommandProber runs the mediainfo CLI.
type CommandProber struct {
	Binary string
}

// Probe executes mediainfo against path and decodes the JSON report.
func (p CommandProber) Probe(ctx context.Context, path string) (*meta.MediaInfo, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "mediainfo"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("mediainfo probe: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "--Output=JSON", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("mediainfo probe: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("mediainfo probe: %w", err)
	}

	var info meta.MediaInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("mediainfo parse: %w", err)
	}
	return &info, nil
}

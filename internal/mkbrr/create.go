package mkbrr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"marquee/internal/logging"
	"marquee/internal/services"
)

// CreateOptions describes one torrent to build.
type CreateOptions struct {
	// Path is the release file or directory.
	Path        string
	AnnounceURL string
	Source      string
	Output      string
}

// Create installs the helper if needed and builds a private torrent.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (string, error) {
	binary, err := m.Ensure(ctx)
	if err != nil {
		return "", err
	}
	out, err := Run(ctx, binary, opts)
	if err != nil {
		return "", err
	}
	m.logger.Info("torrent created",
		logging.String("torrent", out),
		logging.String(logging.FieldEventType, "torrent_created"),
	)
	return out, nil
}

// Run invokes an installed mkbrr binary.
func Run(ctx context.Context, binary string, opts CreateOptions) (string, error) {
	target := strings.TrimSpace(opts.Path)
	output := strings.TrimSpace(opts.Output)
	if target == "" || output == "" {
		return "", services.Wrap(services.ErrValidation, "mkbrr", "create", "content path and output are required", nil)
	}
	if _, err := os.Stat(target); err != nil {
		return "", services.Wrap(services.ErrNotFound, "mkbrr", "create", "content path", err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "mkbrr", "create", "create output dir", err)
	}

	args := []string{"create", target, "--private", "--output", output}
	if announce := strings.TrimSpace(opts.AnnounceURL); announce != "" {
		args = append(args, "--tracker", announce)
	}
	if source := strings.TrimSpace(opts.Source); source != "" {
		args = append(args, "--source", source)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(out))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", services.Wrap(services.ErrExternalTool, "mkbrr", "create",
				fmt.Sprintf("exit %d: %s", exitErr.ExitCode(), detail), err)
		}
		return "", services.Wrap(services.ErrExternalTool, "mkbrr", "create", "run mkbrr", err)
	}
	if _, err := os.Stat(output); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "mkbrr", "create", "torrent not written", err)
	}
	return output, nil
}

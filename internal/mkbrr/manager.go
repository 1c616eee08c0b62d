package mkbrr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/services"
)

const (
	lockRetryDelay  = 250 * time.Millisecond
	defaultTimeout  = 60 * time.Second
	maxErrorBodyLen = 4 << 10
)

// Options configures a Manager.
type Options struct {
	// Dir is the root under which platform folders are created.
	Dir        string
	Version    string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	// Platform overrides host detection.
	Platform *Platform
}

// Manager installs a pinned mkbrr release.
type Manager struct {
	dir      string
	version  string
	baseURL  string
	platform Platform
	client   *http.Client
	logger   *slog.Logger
}

// New validates opts and resolves the target platform.
func New(opts Options) (*Manager, error) {
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		return nil, services.Wrap(services.ErrConfiguration, "mkbrr", "init", "install directory not set", nil)
	}
	version := strings.TrimSpace(opts.Version)
	if !strings.HasPrefix(version, "v") || len(version) < 2 {
		return nil, services.Wrap(services.ErrConfiguration, "mkbrr", "init",
			fmt.Sprintf("invalid version %q", opts.Version), nil)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "mkbrr", "init", "download base url not set", nil)
	}

	var platform Platform
	if opts.Platform != nil {
		platform = *opts.Platform
	} else {
		p, err := CurrentPlatform()
		if err != nil {
			return nil, err
		}
		platform = p
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Manager{
		dir:      dir,
		version:  version,
		baseURL:  baseURL,
		platform: platform,
		client:   client,
		logger:   logging.NewComponentLogger(opts.Logger, "mkbrr"),
	}, nil
}

// NewFromConfig builds a manager from the [mkbrr] section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "mkbrr", "init", "config is nil", nil)
	}
	return New(Options{
		Dir:     cfg.MkbrrDir(),
		Version: cfg.Mkbrr.Version,
		BaseURL: cfg.Mkbrr.DownloadBaseURL,
		Timeout: time.Duration(cfg.Mkbrr.DownloadTimeout) * time.Second,
		Logger:  logger,
	})
}

// BinDir is the platform folder holding the binary and version marker.
func (m *Manager) BinDir() string {
	return filepath.Join(m.dir, filepath.FromSlash(m.platform.Folder))
}

// BinaryPath is where the binary lives once installed.
func (m *Manager) BinaryPath() string {
	return filepath.Join(m.BinDir(), m.platform.BinaryName())
}

// DownloadURL is the release asset for the configured version and platform.
func (m *Manager) DownloadURL() string {
	return fmt.Sprintf("%s/%s/mkbrr_%s_%s", m.baseURL, m.version, strings.TrimPrefix(m.version, "v"), m.platform.File)
}

func (m *Manager) markerPath() string {
	return filepath.Join(m.BinDir(), m.version)
}

// Installed reports whether the pinned version is present and runnable.
func (m *Manager) Installed() bool {
	marker, err := os.Stat(m.markerPath())
	if err != nil || !marker.Mode().IsRegular() {
		return false
	}
	binary, err := os.Stat(m.BinaryPath())
	if err != nil || !binary.Mode().IsRegular() {
		return false
	}
	return m.platform.Windows || executable(m.BinaryPath())
}

// Ensure installs the pinned version when it is missing and returns the
// binary path.
func (m *Manager) Ensure(ctx context.Context) (string, error) {
	if m.Installed() {
		return m.BinaryPath(), nil
	}

	binDir := m.BinDir()
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "mkbrr", "install", "create bin dir", err)
	}

	lock := flock.New(filepath.Join(binDir, ".lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "mkbrr", "install", "acquire install lock", err)
	}
	if !locked {
		return "", services.Wrap(services.ErrTimeout, "mkbrr", "install", "install lock not acquired", nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			m.logger.Warn("failed to release install lock", logging.Error(err))
		}
	}()

	// Another process may have finished while we waited.
	if m.Installed() {
		return m.BinaryPath(), nil
	}
	if err := m.install(ctx); err != nil {
		return "", err
	}
	return m.BinaryPath(), nil
}

func (m *Manager) install(ctx context.Context) error {
	m.removeStale()

	url := m.DownloadURL()
	m.logger.Info("downloading mkbrr",
		logging.String("version", m.version),
		logging.String("url", url),
		logging.String(logging.FieldEventType, "mkbrr_download"),
	)

	archive, err := m.download(ctx, url)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	extract := extractTarGz
	if m.platform.zipped() {
		extract = extractZip
	}
	if err := extract(archive, m.platform.BinaryName(), m.BinaryPath()); err != nil {
		return services.Wrap(services.ErrExternalTool, "mkbrr", "extract", "unpack release archive", err)
	}
	if !m.platform.Windows {
		if err := os.Chmod(m.BinaryPath(), 0o755); err != nil {
			return services.Wrap(services.ErrExternalTool, "mkbrr", "extract", "mark binary executable", err)
		}
	}

	note := fmt.Sprintf("mkbrr version %s installed successfully.", m.version)
	if err := os.WriteFile(m.markerPath(), []byte(note), 0o644); err != nil {
		return services.Wrap(services.ErrExternalTool, "mkbrr", "install", "write version marker", err)
	}
	m.logger.Info("mkbrr installed",
		logging.String("version", m.version),
		logging.String("path", m.BinaryPath()),
		logging.String(logging.FieldEventType, "mkbrr_installed"),
	)
	return nil
}

// removeStale clears the binary and any version markers left by an older
// install.
func (m *Manager) removeStale() {
	_ = os.Remove(m.BinaryPath())
	entries, err := os.ReadDir(m.BinDir())
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && strings.HasPrefix(name, "v") {
			_ = os.Remove(filepath.Join(m.BinDir(), name))
		}
	}
}

func (m *Manager) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "mkbrr", "download", "build request", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "mkbrr", "download", "request release", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		marker := services.ErrExternalTool
		if resp.StatusCode >= http.StatusInternalServerError {
			marker = services.ErrTransient
		}
		return "", services.Wrap(marker, "mkbrr", "download",
			fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	tmp, err := os.CreateTemp(m.BinDir(), "download-*")
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "mkbrr", "download", "create temp file", err)
	}
	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(tmp.Name())
		return "", services.Wrap(services.ErrTransient, "mkbrr", "download", "write archive", err)
	}
	return tmp.Name(), nil
}

package testsupport

import (
	"path/filepath"
	"strings"
	"testing"

	"marquee/internal/config"
)

// ConfigOption adjusts a test configuration after its paths are set.
type ConfigOption func(*config.Config)

// NewConfig returns defaults with every path under t.TempDir(), no trackers
// and an unroutable mkbrr download URL so tests never reach the network.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.Paths{
		DataDir: filepath.Join(root, "data"),
		LogDir:  filepath.Join(root, "logs"),
		TmpDir:  filepath.Join(root, "tmp"),
	}
	cfg.History.Path = filepath.Join(cfg.Paths.DataDir, "history.db")
	cfg.Mkbrr.DownloadBaseURL = "http://127.0.0.1:0/releases"
	cfg.Trackers = map[string]config.Tracker{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTracker enables a tracker with a placeholder key "test-<name>". An
// empty baseURL keeps the tracker's built-in site.
func WithTracker(name, baseURL string) ConfigOption {
	key := strings.ToUpper(strings.TrimSpace(name))
	lower := strings.ToLower(key)
	return func(cfg *config.Config) {
		cfg.Trackers[key] = config.Tracker{
			Enabled:     true,
			APIKey:      "test-" + lower,
			AnnounceURL: "https://announce.invalid/" + lower,
			BaseURL:     baseURL,
		}
	}
}

// WithoutHistory disables the attempt log.
func WithoutHistory() ConfigOption {
	return func(cfg *config.Config) { cfg.History.Enabled = false }
}

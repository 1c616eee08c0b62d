package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
	TmpDir  string `toml:"tmp_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Naming controls release name composition.
type Naming struct {
	// TargetLanguage is the tracker community's language as ISO 639-1.
	TargetLanguage string `toml:"target_language"`
	// TargetCountry is the IMDb country name used to pick a localized title.
	TargetCountry  string `toml:"target_country"`
	GroupSeparator string `toml:"group_separator"`
	// MissingGroup is "sentinel" (append NOGRP) or "omit".
	MissingGroup    string              `toml:"missing_group"`
	LocalizedTitle  bool                `toml:"localized_title"`
	TemplateVersion string              `toml:"template_version"`
	Templates       map[string][]string `toml:"templates"`
}

// Mkbrr configures the torrent-creation helper binary.
type Mkbrr struct {
	Version         string `toml:"version"`
	DownloadBaseURL string `toml:"download_base_url"`
	DownloadTimeout int    `toml:"download_timeout"`
}

// History configures the local record of prepared uploads.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Upload contains settings shared by every tracker submission.
type Upload struct {
	Debug          bool   `toml:"debug"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Concurrency    int    `toml:"concurrency"`
}

// Notifications configures ntfy delivery of upload results.
type Notifications struct {
	// NtfyTopic is the full topic URL; empty disables notifications.
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Tracker contains per-tracker credentials and flags.
type Tracker struct {
	Enabled     bool   `toml:"enabled"`
	APIKey      string `toml:"api_key"`
	AnnounceURL string `toml:"announce_url"`
	BaseURL     string `toml:"base_url"`
	Anon        bool   `toml:"anon"`
	ModQ        bool   `toml:"modq"`
	Draft       bool   `toml:"draft"`
}

// Config encapsulates all configuration values for marquee.
//
// Configuration sections by subsystem:
//   - Paths: data, log and scratch directories
//   - Logging: log format and level
//   - Naming: release name language, group handling and templates
//   - Mkbrr: helper binary version and download source
//   - History: SQLite log of prepared uploads
//   - Upload: submission defaults
//   - Notifications: ntfy topic for upload results
//   - Trackers: per-tracker credentials keyed by upper-case tracker name
type Config struct {
	Paths         Paths              `toml:"paths"`
	Logging       Logging            `toml:"logging"`
	Naming        Naming             `toml:"naming"`
	Mkbrr         Mkbrr              `toml:"mkbrr"`
	History       History            `toml:"history"`
	Upload        Upload             `toml:"upload"`
	Notifications Notifications      `toml:"notifications"`
	Trackers      map[string]Tracker `toml:"trackers"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/marquee/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("marquee.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data, log and scratch directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.TmpDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RecordDir returns the scratch directory for one metadata record.
func (c *Config) RecordDir(uuid string) string {
	return filepath.Join(c.Paths.TmpDir, uuid)
}

// MkbrrDir returns the directory the helper binary is installed under.
func (c *Config) MkbrrDir() string {
	return filepath.Join(c.Paths.DataDir, "bin", "mkbrr")
}

// Tracker returns the configuration for name (case-insensitive).
func (c *Config) Tracker(name string) (Tracker, bool) {
	t, ok := c.Trackers[strings.ToUpper(strings.TrimSpace(name))]
	return t, ok
}

// EnabledTrackers returns the upper-case names of enabled trackers, sorted.
func (c *Config) EnabledTrackers() []string {
	names := make([]string, 0, len(c.Trackers))
	for name, t := range c.Trackers {
		if t.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the annotated sample configuration to path. An existing
// file is left alone unless overwrite is set; the error then wraps
// fs.ErrExist.
func CreateSample(path string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	if _, err := f.WriteString(sampleConfig); err != nil {
		_ = f.Close()
		return fmt.Errorf("write sample config: %w", err)
	}
	return f.Close()
}

// SampleConfig returns the embedded sample configuration text.
func SampleConfig() string {
	return sampleConfig
}

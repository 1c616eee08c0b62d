package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeNaming()
	c.normalizeMkbrr()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeUpload()
	c.normalizeNotifications()
	c.normalizeTrackers()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TmpDir) == "" {
		c.Paths.TmpDir = filepath.Join(c.Paths.DataDir, "tmp")
	}
	if c.Paths.TmpDir, err = expandPath(c.Paths.TmpDir); err != nil {
		return fmt.Errorf("paths.tmp_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeNaming() {
	c.Naming.TargetLanguage = strings.ToLower(strings.TrimSpace(c.Naming.TargetLanguage))
	if c.Naming.TargetLanguage == "" {
		c.Naming.TargetLanguage = defaultTargetLanguage
	}
	c.Naming.TargetCountry = strings.TrimSpace(c.Naming.TargetCountry)
	if c.Naming.TargetCountry == "" {
		c.Naming.TargetCountry = defaultTargetCountry
	}
	if c.Naming.GroupSeparator == "" {
		c.Naming.GroupSeparator = defaultGroupSeparator
	}
	c.Naming.MissingGroup = strings.ToLower(strings.TrimSpace(c.Naming.MissingGroup))
	if c.Naming.MissingGroup == "" {
		c.Naming.MissingGroup = defaultMissingGroup
	}
	c.Naming.TemplateVersion = strings.TrimSpace(c.Naming.TemplateVersion)
	if len(c.Naming.Templates) > 0 {
		templates := make(map[string][]string, len(c.Naming.Templates))
		for key, tokens := range c.Naming.Templates {
			templates[strings.ToLower(strings.TrimSpace(key))] = tokens
		}
		c.Naming.Templates = templates
	}
}

func (c *Config) normalizeMkbrr() {
	c.Mkbrr.Version = strings.TrimSpace(c.Mkbrr.Version)
	if c.Mkbrr.Version == "" {
		c.Mkbrr.Version = defaultMkbrrVersion
	}
	c.Mkbrr.DownloadBaseURL = strings.TrimRight(strings.TrimSpace(c.Mkbrr.DownloadBaseURL), "/")
	if c.Mkbrr.DownloadBaseURL == "" {
		c.Mkbrr.DownloadBaseURL = defaultMkbrrBaseURL
	}
	if c.Mkbrr.DownloadTimeout <= 0 {
		c.Mkbrr.DownloadTimeout = defaultMkbrrTimeout
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = filepath.Join(c.Paths.DataDir, defaultHistoryFile)
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeUpload() {
	c.Upload.UserAgent = strings.TrimSpace(c.Upload.UserAgent)
	if c.Upload.UserAgent == "" {
		c.Upload.UserAgent = defaultUserAgent
	}
	if c.Upload.TimeoutSeconds <= 0 {
		c.Upload.TimeoutSeconds = defaultUploadTimeout
	}
	if c.Upload.Concurrency <= 0 {
		c.Upload.Concurrency = defaultUploadConcurrent
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeTrackers() {
	trackers := make(map[string]Tracker, len(c.Trackers))
	for name, t := range c.Trackers {
		key := strings.ToUpper(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		t.APIKey = strings.TrimSpace(t.APIKey)
		if t.APIKey == "" {
			if value, ok := os.LookupEnv(key + "_API_KEY"); ok {
				t.APIKey = strings.TrimSpace(value)
			}
		}
		t.AnnounceURL = strings.TrimSpace(t.AnnounceURL)
		t.BaseURL = strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")
		trackers[key] = t
	}
	c.Trackers = trackers
}

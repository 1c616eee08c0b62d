package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. Template versions and tracker
// names are checked where they are resolved, in the naming and trackers packages.
func (c *Config) Validate() error {
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateMkbrr(); err != nil {
		return err
	}
	if err := c.validateTrackers(); err != nil {
		return err
	}
	return c.validateNotifications()
}

func (c *Config) validateNaming() error {
	lang := c.Naming.TargetLanguage
	if len(lang) != 2 || strings.ContainsFunc(lang, func(r rune) bool { return r < 'a' || r > 'z' }) {
		return fmt.Errorf("naming.target_language must be a two-letter ISO 639-1 code, got %q", lang)
	}
	switch c.Naming.MissingGroup {
	case MissingGroupSentinel, MissingGroupOmit:
	default:
		return fmt.Errorf("naming.missing_group must be %q or %q, got %q", MissingGroupSentinel, MissingGroupOmit, c.Naming.MissingGroup)
	}
	if strings.ContainsAny(c.Naming.GroupSeparator, " \t\n") {
		return errors.New("naming.group_separator must not contain whitespace")
	}
	return nil
}

func (c *Config) validateMkbrr() error {
	if !strings.HasPrefix(c.Mkbrr.Version, "v") || len(c.Mkbrr.Version) < 2 {
		return fmt.Errorf("mkbrr.version must look like v1.2.3, got %q", c.Mkbrr.Version)
	}
	return nil
}

func (c *Config) validateTrackers() error {
	for name, t := range c.Trackers {
		if !t.Enabled {
			continue
		}
		if t.APIKey == "" {
			return fmt.Errorf("trackers.%s.api_key is required when the tracker is enabled (or set %s_API_KEY)", name, name)
		}
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	u, err := url.Parse(topic)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic must be an http(s) URL, got %q", topic)
	}
	if strings.Trim(u.Path, "/") == "" {
		return fmt.Errorf("notifications.ntfy_topic must name a topic, e.g. https://ntfy.sh/my-uploads")
	}
	return nil
}

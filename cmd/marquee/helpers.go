package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"marquee/internal/config"
	"marquee/internal/meta"
	"marquee/internal/services"
)

// loadRecord reads a metadata record from a JSON file, or derives one from a
// release name when no file is given.
func loadRecord(metaPath, release string) (*meta.Record, error) {
	metaPath = strings.TrimSpace(metaPath)
	release = strings.TrimSpace(release)
	switch {
	case metaPath != "" && release != "":
		return nil, services.Wrap(services.ErrValidation, "cli", "record", "use either --meta or --release, not both", nil)
	case metaPath != "":
		expanded, err := config.ExpandPath(metaPath)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "cli", "record", "resolve --meta path", err)
		}
		rec, err := meta.Load(expanded)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, services.Wrap(services.ErrNotFound, "cli", "record", "metadata file", err)
			}
			return nil, services.Wrap(services.ErrValidation, "cli", "record", "load metadata", err)
		}
		return rec, nil
	case release != "":
		return meta.FromReleaseName(release), nil
	default:
		return nil, services.Wrap(services.ErrValidation, "cli", "record", "a metadata file (--meta) or release name (--release) is required", nil)
	}
}

// readOptionalFile returns the file contents, or "" when path is empty.
func readOptionalFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "cli", "read", path, err)
	}
	return string(data), nil
}

func uploadTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Upload.TimeoutSeconds) * time.Second
}

func firstLine(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.IndexByte(value, '\n'); i >= 0 {
		return value[:i]
	}
	return value
}

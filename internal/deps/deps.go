// Package deps reports whether the external programs marquee shells out to
// are available.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotConfigured is reported for a tool whose command is blank.
var ErrNotConfigured = errors.New("command not configured")

// Tool is an external program marquee runs.
type Tool struct {
	Name     string
	Command  string
	Purpose  string
	Optional bool
}

// Result is the outcome of locating one tool. Path is the resolved
// executable when Err is nil.
type Result struct {
	Tool
	Path string
	Err  error
}

// Available reports whether the tool was found.
func (r Result) Available() bool { return r.Err == nil }

// State is "ok", "optional" for an absent optional tool, or "missing".
func (r Result) State() string {
	switch {
	case r.Err == nil:
		return "ok"
	case r.Optional:
		return "optional"
	default:
		return "missing"
	}
}

// Detail is the resolved path, or the reason the tool was not found.
func (r Result) Detail() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Path
}

// Tools lists the programs used while preparing an upload. mkbrr is the
// managed install location, which may not exist yet.
func Tools(mediainfo, mkbrr string) []Tool {
	if strings.TrimSpace(mediainfo) == "" {
		mediainfo = "mediainfo"
	}
	return []Tool{
		{Name: "MediaInfo", Command: mediainfo, Purpose: "audio and subtitle language probe", Optional: true},
		{Name: "mkbrr", Command: mkbrr, Purpose: "torrent creation ('marquee mkbrr ensure' installs it)"},
	}
}

// Locate resolves each tool. Commands containing a path separator are
// checked in place; bare names are searched on PATH.
func Locate(tools []Tool) []Result {
	results := make([]Result, len(tools))
	for i, tool := range tools {
		tool.Command = strings.TrimSpace(tool.Command)
		results[i] = Result{Tool: tool}
		if tool.Command == "" {
			results[i].Err = ErrNotConfigured
			continue
		}
		path, err := exec.LookPath(tool.Command)
		if err != nil {
			results[i].Err = fmt.Errorf("%s not found", tool.Command)
			continue
		}
		results[i].Path = path
	}
	return results
}

// Missing returns the names of required tools that were not found.
func Missing(results []Result) []string {
	var names []string
	for _, r := range results {
		if r.State() == "missing" {
			names = append(names, r.Name)
		}
	}
	return names
}

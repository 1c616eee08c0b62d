package naming

import (
	"path/filepath"
	"regexp"
	"strings"

	"marquee/internal/meta"
)

// NoGroup is the sentinel used when no release group can be verified.
const NoGroup = "NOGRP"

const maxGroupLength = 30

var (
	// invalidGroupMarkers are placeholders that upstream tools write when the
	// group is unknown.
	invalidGroupMarkers = map[string]struct{}{
		"nogrp":   {},
		"nogroup": {},
		"unknown": {},
		"unk":     {},
	}

	groupCandidatePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	// derivedGroupAllowList holds the markers accepted when the group is read
	// from the file name rather than supplied explicitly.
	derivedGroupAllowList = regexp.MustCompile(`(?i)^(UNTOUCHED|VU1080|VU720|VU)$`)

	nameDelimiters = regexp.MustCompile(`[.\-]`)

	containerExtensions = map[string]struct{}{
		"mkv": {}, "mp4": {}, "m2ts": {}, "ts": {}, "avi": {}, "iso": {}, "vob": {}, "m4v": {},
	}
)

// ReleaseGroup returns the verified release group for rec, or NoGroup.
func ReleaseGroup(rec *meta.Record) string {
	if rec == nil {
		return NoGroup
	}
	if tag, ok := explicitGroup(rec.Tag); ok {
		return tag
	}
	if candidate := derivedGroup(rec); candidate != "" && acceptDerivedGroup(candidate) {
		return candidate
	}
	return NoGroup
}

func explicitGroup(tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimLeft(tag, "-.")
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	if strings.ContainsAny(tag, " \t\r\n") {
		return "", false
	}
	if _, invalid := invalidGroupMarkers[strings.ToLower(tag)]; invalid {
		return "", false
	}
	return tag, true
}

func derivedGroup(rec *meta.Record) string {
	base := rec.BaseName()
	if base == "" {
		return ""
	}
	base = stripExtension(base, rec.MediaInfo.FileExtension())

	segments := nameDelimiters.Split(base, -1)
	last := ""
	for i := len(segments) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(segments[i]); s != "" {
			last = s
			break
		}
	}
	if fields := strings.Fields(last); len(fields) > 1 {
		last = fields[len(fields)-1]
	}
	return last
}

func stripExtension(base, evidence string) string {
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if ext == "" {
		return base
	}
	lower := strings.ToLower(ext)
	if evidence != "" && strings.EqualFold(evidence, ext) {
		return strings.TrimSuffix(base, "."+ext)
	}
	if _, ok := containerExtensions[lower]; ok {
		return strings.TrimSuffix(base, "."+ext)
	}
	return base
}

func acceptDerivedGroup(candidate string) bool {
	if candidate == "" || len(candidate) > maxGroupLength {
		return false
	}
	if !groupCandidatePattern.MatchString(candidate) {
		return false
	}
	return derivedGroupAllowList.MatchString(candidate)
}

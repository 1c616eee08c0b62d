package meta

import (
	"fmt"
	"strings"

	"github.com/moistari/rls"

	"marquee/internal/language"
)

// FromReleaseName builds a best-effort record from a scene-style release name.
// It is used when no upstream metadata file exists, so every field it cannot
// infer stays empty.
func FromReleaseName(name string) *Record {
	name = strings.TrimSpace(name)
	r := rls.ParseString(name)

	rec := &Record{
		Name:       name,
		Title:      strings.TrimSpace(r.Title),
		Year:       r.Year,
		Tag:        strings.TrimSpace(r.Group),
		Resolution: Resolution(strings.ToLower(strings.TrimSpace(r.Resolution))),
		Region:     strings.TrimSpace(r.Region),
		Category:   CategoryMovie,
	}

	if r.Series > 0 {
		rec.Category = CategoryTV
		rec.Season = fmt.Sprintf("S%02d", r.Series)
		if r.Episode > 0 {
			rec.Episode = fmt.Sprintf("E%02d", r.Episode)
		} else {
			rec.TVPack = true
		}
	}

	other := upperSet(r.Other)
	rec.Type, rec.IsDisc = classify(r.Source, r.Disc, other)
	rec.Source = releaseSource(r.Source)

	for _, codec := range r.Codec {
		switch lower := strings.ToLower(codec); {
		case strings.HasPrefix(lower, "x26"):
			rec.VideoEncode = codec
		case rec.VideoCodec == "":
			rec.VideoCodec = codec
		}
	}
	if rec.VideoEncode == "" && rec.Type != TypeDisc && rec.Type != TypeRemux {
		rec.VideoEncode = rec.VideoCodec
	}

	rec.Audio = releaseAudio(r.Audio, r.Channels)
	rec.HDR = strings.Join(r.HDR, " ")
	rec.Edition = strings.Join(append(append([]string{}, r.Edition...), r.Cut...), " ")
	if _, ok := other["HYBRID"]; ok {
		rec.Hybrid = true
	}
	for _, marker := range []string{"REPACK", "PROPER", "RERIP"} {
		if _, ok := other[marker]; ok {
			rec.Repack = marker
			break
		}
	}
	if strings.Contains(strings.ToUpper(r.Source), "UHD") {
		rec.UHD = "UHD"
	}

	for _, lang := range r.Language {
		code := language.ToISO2(lang)
		if code == "" {
			continue
		}
		rec.AudioLanguages = append(rec.AudioLanguages, code)
	}

	rec.EnsureUUID()
	return rec
}

func classify(source, disc string, other map[string]struct{}) (Type, DiscType) {
	src := strings.ToUpper(strings.ReplaceAll(source, ".", ""))
	if _, ok := other["REMUX"]; ok {
		return TypeRemux, DiscNone
	}
	switch {
	case strings.Contains(src, "WEBRIP"):
		return TypeWebRip, DiscNone
	case strings.Contains(src, "WEB"):
		return TypeWebDL, DiscNone
	case strings.Contains(src, "HDTV"), strings.Contains(src, "PDTV"):
		return TypeHDTV, DiscNone
	case strings.Contains(src, "DVDRIP"):
		return TypeDVDRip, DiscNone
	case strings.Contains(src, "BDRIP"), strings.Contains(src, "BRRIP"):
		return TypeBRRip, DiscNone
	}
	if strings.TrimSpace(disc) != "" {
		switch {
		case strings.Contains(src, "HDDVD"):
			return TypeDisc, DiscHDDVD
		case strings.Contains(src, "DVD"):
			return TypeDisc, DiscDVD
		default:
			return TypeDisc, DiscBDMV
		}
	}
	if strings.Contains(src, "BLURAY") || strings.Contains(src, "DVD") {
		return TypeEncode, DiscNone
	}
	return "", DiscNone
}

func releaseSource(source string) string {
	src := strings.ToUpper(strings.ReplaceAll(source, ".", ""))
	switch {
	case strings.Contains(src, "BLURAY"):
		return "BluRay"
	case strings.Contains(src, "HDDVD"):
		return "HDDVD"
	case strings.Contains(src, "DVD"):
		return "DVD"
	case strings.Contains(src, "HDTV"):
		return "HDTV"
	case strings.Contains(src, "WEB"):
		return "WEB"
	}
	return strings.TrimSpace(source)
}

func releaseAudio(codecs []string, channels string) string {
	parts := make([]string, 0, len(codecs)+1)
	for _, codec := range codecs {
		codec = strings.TrimSpace(strings.ReplaceAll(codec, ".", " "))
		if codec != "" {
			parts = append(parts, codec)
		}
	}
	if channels = strings.TrimSpace(channels); channels != "" {
		parts = append(parts, channels)
	}
	return strings.Join(parts, " ")
}

func upperSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToUpper(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

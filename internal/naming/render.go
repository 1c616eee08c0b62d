package naming

import (
	"strconv"
	"strings"

	"marquee/internal/meta"
)

// Fields are the values derived from a record before rendering.
type Fields struct {
	Title       string
	LanguageTag string
	Hybrid      bool
	Region      string
	Source      string
}

var typeLabels = map[meta.Type]string{
	meta.TypeWebDL:  "WEB-DL",
	meta.TypeWebRip: "WEBRip",
	meta.TypeDVDRip: "DVDRip",
	meta.TypeBRRip:  "BRRip",
}

// Render renders rec through the template for its type. Records outside the
// template table render as their existing name. Every token is optional and
// the result never carries leading, trailing or repeated whitespace.
func Render(rec *meta.Record, fields Fields, set TemplateSet) string {
	if rec == nil {
		return ""
	}
	key, ok := templateKey(rec.Type, rec.IsDisc)
	tokens := set.Templates[key]
	if !ok || len(tokens) == 0 {
		return CollapseWhitespace(rec.Name)
	}

	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if value := tokenValue(rec, fields, token); value != "" {
			parts = append(parts, value)
		}
	}
	name := strings.Join(parts, " ")
	name = strings.ReplaceAll(name, "Dual-Audio", "")
	return CollapseWhitespace(name)
}

func tokenValue(rec *meta.Record, fields Fields, token Token) string {
	switch token {
	case TokenTitle:
		return fields.Title
	case TokenYear:
		if rec.Year > 0 {
			return strconv.Itoa(rec.Year)
		}
		return ""
	case TokenSeasonEpisode:
		return rec.Season + rec.Episode
	case TokenSeason:
		return rec.Season
	case TokenEpisodeTitle:
		return rec.EpisodeTitle
	case TokenPart:
		return rec.Part
	case Token3D:
		return rec.ThreeD
	case TokenAudioLangTag:
		return fields.LanguageTag
	case TokenEdition:
		return rec.Edition
	case TokenHybrid:
		if fields.Hybrid {
			return "Hybrid"
		}
		return ""
	case TokenRepack:
		return rec.Repack
	case TokenResolution:
		return string(rec.Resolution)
	case TokenRegion:
		return fields.Region
	case TokenUHD:
		return rec.UHD
	case TokenSource:
		return fields.Source
	case TokenService:
		return rec.Service
	case TokenTypeLabel:
		return typeLabels[rec.Type]
	case TokenRemux:
		return "REMUX"
	case TokenHDR:
		return rec.HDR
	case TokenVideoCodec:
		return rec.VideoCodec
	case TokenVideoEncode:
		return rec.VideoEncode
	case TokenAudio:
		return rec.Audio
	case TokenDVDSize:
		return rec.DVDSize
	}
	return ""
}

// CollapseWhitespace folds whitespace runs to a single space and trims the ends.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// isHybrid applies the hybrid rule: no explicit edition, a hybrid source, and
// no "hybrid" already present in the title.
func isHybrid(rec *meta.Record, title string) bool {
	if strings.TrimSpace(rec.Edition) != "" {
		return false
	}
	if !rec.Hybrid && len(rec.Sources) < 2 {
		return false
	}
	return !strings.Contains(strings.ToUpper(title), "HYBRID")
}

// splitRegion separates a leading PAL/NTSC marker from a DVD source string.
func splitRegion(rec *meta.Record) (region, source string) {
	region = strings.TrimSpace(rec.Region)
	source = strings.TrimSpace(rec.Source)
	if rec.Type != meta.TypeDisc {
		return "", source
	}
	if rec.IsDisc == meta.DiscDVD {
		for _, marker := range []string{"PAL", "NTSC"} {
			if rest, ok := strings.CutPrefix(source, marker+" "); ok {
				if region == "" {
					region = marker
				}
				source = strings.TrimSpace(rest)
				break
			}
		}
	}
	return region, source
}

package naming

import (
	"marquee/internal/language"
)

const englishName = "ENGLISH"

// AudioLanguageTag composes the language marker for a release name from its
// raw audio language identifiers. target is the tracker's home language as
// an ISO 639-1 code. subtitled reports target-language subtitles alongside
// the absence of target-language audio, which overrides every other result.
func AudioLanguageTag(audioLanguages []string, target string, subtitled bool) string {
	targetName := language.ExpandName(target)
	if subtitled && targetName != "" {
		return targetName + " SUBBED"
	}

	names := distinctNames(audioLanguages)
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		switch {
		case contains(names, targetName):
			return targetName + " DL"
		case contains(names, englishName):
			return englishName + " DL"
		default:
			return names[0] + " DL"
		}
	default:
		if contains(names, targetName) {
			return targetName + " ML"
		}
		return "MULTI"
	}
}

func distinctNames(values []string) []string {
	names := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		name := language.ExpandName(value)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func contains(values []string, target string) bool {
	if target == "" {
		return false
	}
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

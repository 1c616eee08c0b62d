package naming

import (
	"strings"

	"marquee/internal/meta"
)

// SelectAlternateTitle picks the localized title from an AKA list. The first
// attribute-free entry for the target country wins outright; only when no
// such entry exists anywhere is the first attribute-free entry in the target
// language used.
func SelectAlternateTitle(akas []meta.AKA, country, lang string) (string, bool) {
	country = strings.TrimSpace(country)
	lang = strings.TrimSpace(lang)

	languageMatch := ""
	found := false
	for _, aka := range akas {
		if len(aka.Attributes) > 0 {
			continue
		}
		title := strings.TrimSpace(aka.Title)
		if title == "" {
			continue
		}
		if country != "" && strings.EqualFold(strings.TrimSpace(aka.Country), country) {
			return title, true
		}
		if !found && lang != "" && strings.EqualFold(strings.TrimSpace(aka.Language), lang) {
			languageMatch = title
			found = true
		}
	}
	return languageMatch, found
}

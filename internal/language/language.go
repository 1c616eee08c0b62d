package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is one resolved language.
type Language struct {
	Code2 string // ISO 639-1, empty when the language has none
	Code3 string // ISO 639-3 / 639-2 terminology code
	Name  string // English name from CLDR, e.g. "German"
}

// known seeds the index. Every other 2- or 3-letter code is resolved on
// demand but cannot be matched by name.
var known = []string{
	"en", "de", "es", "fr", "it", "pt", "ja", "ko", "zh", "ru", "ar", "hi",
	"nl", "pl", "sv", "da", "no", "fi", "cs", "el", "tr", "hu", "ro",
	"af", "sq", "am", "hy", "az", "eu", "be", "bn", "bs", "bg", "ca", "hr",
	"et", "fa", "gl", "ka", "gu", "he", "is", "id", "ga", "kn", "kk", "km",
	"lv", "lt", "lb", "mk", "ms", "ml", "mt", "mr", "mn", "ne", "pa", "sr",
	"si", "sk", "sl", "sw", "ta", "te", "th", "uk", "ur", "uz", "vi", "cy",
	"yi", "zu", "tl", "nb", "nn",
}

// aliases are spellings CLDR does not produce: ISO 639-2 bibliographic codes
// and native or dialect names that show up in mediainfo output.
var aliases = map[string]string{
	"ger": "de", "fre": "fr", "dut": "nl", "chi": "zh", "cze": "cs",
	"gre": "el", "rum": "ro", "per": "fa", "slo": "sk", "ice": "is",
	"alb": "sq", "arm": "hy", "baq": "eu", "geo": "ka", "mac": "mk",
	"may": "ms", "wel": "cy",
	"deutsch": "de", "castilian": "es", "mandarin": "zh", "flemish": "nl",
}

var (
	index = map[string]Language{}
	upper = cases.Upper(xlanguage.Und)
)

func init() {
	for _, code := range known {
		lang, ok := resolve(code)
		if !ok {
			continue
		}
		if lang.Code2 != "" {
			index[lang.Code2] = lang
		}
		index[lang.Code3] = lang
		index[strings.ToLower(lang.Name)] = lang
	}
	for alias, code := range aliases {
		if lang, ok := index[code]; ok {
			index[alias] = lang
		}
	}
}

// resolve looks a code up in the CLDR tables.
func resolve(code string) (Language, bool) {
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return Language{}, false
	}
	name := display.English.Languages().Name(xlanguage.Make(base.String()))
	if name == "" {
		return Language{}, false
	}
	lang := Language{Code3: base.ISO3(), Name: name}
	if s := base.String(); len(s) == 2 {
		lang.Code2 = s
	}
	return lang, true
}

// Lookup resolves an ISO 639-1 or 639-2 code, an English name, or a tag
// with a region suffix ("en-US", "pt_BR"). Matching is case-insensitive.
func Lookup(value string) (Language, bool) {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return Language{}, false
	}
	if lang, ok := lookupKey(key); ok {
		return lang, true
	}
	if primary, _, found := strings.Cut(strings.ReplaceAll(key, "_", "-"), "-"); found && primary != "" {
		return lookupKey(primary)
	}
	return Language{}, false
}

func lookupKey(key string) (Language, bool) {
	if lang, ok := index[key]; ok {
		return lang, true
	}
	if len(key) == 2 || len(key) == 3 {
		return resolve(key)
	}
	return Language{}, false
}

// NormalizeCode folds a code, an English name or an IETF tag such as "en-US"
// to a lowercase ISO 639-1 code. Two-letter input passes through; anything
// unrecognized comes back lowercased.
func NormalizeCode(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	primary, _, _ := strings.Cut(value, "-")
	primary = strings.ToLower(primary)
	if len(primary) == 2 {
		return primary
	}
	if lang, ok := Lookup(primary); ok && lang.Code2 != "" {
		return lang.Code2
	}
	return strings.ToLower(value)
}

// ExpandName returns the upper-case English name used in release titles,
// "de" -> "GERMAN". Unrecognized input is upper-cased as given.
func ExpandName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if lang, ok := Lookup(value); ok {
		return upper.String(lang.Name)
	}
	return upper.String(value)
}

// ToISO2 returns the ISO 639-1 code for value, or "" when it has none.
// Unknown two-letter input passes through.
func ToISO2(value string) string {
	if lang, ok := Lookup(value); ok && lang.Code2 != "" {
		return lang.Code2
	}
	if key := strings.ToLower(strings.TrimSpace(value)); len(key) == 2 {
		return key
	}
	return ""
}

// DisplayName returns the English name, "Unknown" for empty input, or the
// upper-cased input when it is not a language.
func DisplayName(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Unknown"
	}
	if lang, ok := Lookup(value); ok {
		return lang.Name
	}
	return strings.ToUpper(strings.TrimSpace(value))
}

// NormalizeList maps values through NormalizeCode, dropping blanks and
// duplicates while keeping first-seen order.
func NormalizeList(values []string) []string {
	var out []string
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		code := NormalizeCode(value)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

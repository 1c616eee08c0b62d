package langdetect

import (
	"bufio"
	"strings"
)

// summaryLanguages reads languages from a BDInfo quick summary, where streams
// appear as "Audio: German / DTS-HD Master Audio / 5.1 / ..." lines.
func summaryLanguages(summary string) (audio, subtitles []string) {
	scanner := bufio.NewScanner(strings.NewReader(summary))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		lang, _, _ := strings.Cut(value, "/")
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "audio":
			if !isCommentaryLine(value) {
				audio = append(audio, lang)
			}
		case "subtitle":
			subtitles = append(subtitles, lang)
		}
	}
	return audio, subtitles
}

func isCommentaryLine(value string) bool {
	lower := strings.ToLower(value)
	return strings.Contains(lower, "commentary") || strings.Contains(lower, "kommentar")
}

// textReportLanguages reads languages from a plain-text mediainfo report.
// Sections start with a bare header ("Audio", "Audio #2", "Text #1") and hold
// "Key : Value" lines.
func textReportLanguages(report string) (audio, subtitles []string) {
	section := ""
	title := ""
	lang := ""
	flush := func() {
		if lang == "" {
			return
		}
		switch section {
		case "audio":
			if !isCommentaryLine(title) {
				audio = append(audio, lang)
			}
		case "text":
			subtitles = append(subtitles, lang)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(report))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			flush()
			header, _, _ := strings.Cut(line, "#")
			section = strings.ToLower(strings.TrimSpace(header))
			title, lang = "", ""
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "language":
			lang = strings.TrimSpace(value)
		case "title":
			title = strings.TrimSpace(value)
		}
	}
	flush()
	return audio, subtitles
}

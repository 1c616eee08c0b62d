package trackers

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const maxResponseBytes = 1 << 20

// responseDetail condenses an unexpected response body for error messages.
// Trackers behind a proxy or a login wall answer with HTML; the page title and
// the first alert or heading are kept instead of the raw markup.
func responseDetail(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response"
	}
	if !looksLikeHTML(text) {
		return truncate(text, 300)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return truncate(text, 300)
	}
	parts := make([]string, 0, 2)
	if title := collapse(doc.Find("title").First().Text()); title != "" {
		parts = append(parts, title)
	}
	doc.Find(".alert, .error, h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if msg := collapse(s.Text()); msg != "" {
			if len(parts) == 0 || parts[0] != msg {
				parts = append(parts, msg)
			}
			return false
		}
		return true
	})
	if len(parts) == 0 {
		return "html response"
	}
	return truncate("html response: "+strings.Join(parts, " - "), 300)
}

func looksLikeHTML(text string) bool {
	lower := strings.ToLower(text[:min(len(text), 512)])
	return strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html")
}

func collapse(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// truncate cuts value to at most limit bytes without splitting a rune.
func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "..."
}

package naming

import (
	"fmt"
	"strings"

	"github.com/moistari/rls"

	"marquee/internal/meta"
)

// Audit parses a rendered name back with a scene-release parser and reports
// fields that do not survive the round trip. Issues are advisory.
func Audit(name string, rec *meta.Record) []string {
	if rec == nil || strings.TrimSpace(name) == "" {
		return nil
	}
	parsed := rls.ParseString(name)

	var issues []string
	if rec.Year > 0 && parsed.Year != rec.Year {
		issues = append(issues, fmt.Sprintf("year parsed as %d, want %d", parsed.Year, rec.Year))
	}
	if rec.Resolution != "" && !strings.EqualFold(parsed.Resolution, string(rec.Resolution)) {
		issues = append(issues, fmt.Sprintf("resolution parsed as %q, want %q", parsed.Resolution, rec.Resolution))
	}
	return issues
}

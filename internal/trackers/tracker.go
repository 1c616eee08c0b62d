package trackers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"marquee/internal/meta"
	"marquee/internal/naming"
	"marquee/internal/services"
)

// Tracker is one upload destination.
type Tracker interface {
	Name() string
	// SourceFlag is stamped into the torrent's info dict.
	SourceFlag() string
	UploadURL() string
	BannedGroups() []string
	// EditName returns the release name submitted to the tracker.
	EditName(ctx context.Context, rec *meta.Record) string
	// AdditionalChecks rejects releases the tracker does not accept. Warnings
	// describe rules that could not be verified from the metadata.
	AdditionalChecks(rec *meta.Record) (warnings []string, err error)
	// Description renders the tracker description from the shared base text.
	Description(rec *meta.Record, base string) string
	// Form assembles the upload request.
	Form(rec *meta.Record, sub Submission) (Form, error)
}

// Submission carries the prepared artifacts for one tracker.
type Submission struct {
	Name        string
	Description string
	MediaInfo   string
	BDInfo      string
	TorrentPath string
}

// Form is a multipart upload request.
type Form struct {
	URL       string
	Query     url.Values
	Header    http.Header
	Fields    map[string]string
	FileField string
	FilePath  string
}

// CheckBanned rejects releases from groups the tracker bans. Matching is
// case-insensitive.
func CheckBanned(t Tracker, group string) error {
	group = strings.TrimSpace(group)
	if group == "" || group == naming.NoGroup {
		return nil
	}
	for _, banned := range t.BannedGroups() {
		if strings.EqualFold(banned, group) {
			return services.Wrap(services.ErrValidation, t.Name(), "banned group", fmt.Sprintf("%s releases are not allowed", group), nil)
		}
	}
	return nil
}

// Validate runs the banned-group check followed by the tracker's own checks.
func Validate(t Tracker, rec *meta.Record) ([]string, error) {
	if err := CheckBanned(t, naming.ReleaseGroup(rec)); err != nil {
		return nil, err
	}
	return t.AdditionalChecks(rec)
}

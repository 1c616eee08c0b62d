package trackers

import (
	"fmt"
	"net/url"
	"strings"

	"marquee/internal/config"
	"marquee/internal/meta"
	"marquee/internal/naming"
	"marquee/internal/services"
)

const a4kBaseURL = "https://aura4k.net"

var (
	a4kTypeIDs = map[meta.Type]string{
		meta.TypeDisc:   "1",
		meta.TypeRemux:  "2",
		meta.TypeWebDL:  "4",
		meta.TypeEncode: "3",
	}
	a4kResolutionIDs = map[meta.Resolution]string{
		"4320p": "1",
		"2160p": "2",
	}
	a4kBannedGroups = []string{"BiTOR", "DepraveD", "Flights", "SasukeducK", "SPDVD", "TEKNO3D"}

	// a4kImageHosts maps screenshot host domains to the names the tracker approves.
	a4kImageHosts = map[string]string{
		"ibb.co":        "imgbb",
		"imgbox.com":    "imgbox",
		"imgur.com":     "imgur",
		"postimg.cc":    "postimg",
		"ptscreens.com": "ptscreens",
	}
)

// Minimum video bitrate for non-disc encodes, in kbps.
const (
	a4kMinMovieKbps = 15000
	a4kMinTVKbps    = 10000
)

// A4K is Aura4K, a UHD-only UNIT3D tracker.
type A4K struct {
	unit3D
}

// NewA4K constructs the A4K adapter.
func NewA4K(cfg config.Tracker, composer *naming.Composer) *A4K {
	t := &A4K{unit3D: newUnit3D("A4K", a4kBaseURL, cfg, composer)}
	t.typeIDs = a4kTypeIDs
	t.resolutionIDs = a4kResolutionIDs
	t.banned = a4kBannedGroups
	return t
}

// AdditionalChecks enforces the 4K-only rule, the accepted release types and
// the encode bitrate floor.
func (t *A4K) AdditionalChecks(rec *meta.Record) ([]string, error) {
	if rec.Resolution != "2160p" && rec.Resolution != "4320p" {
		return nil, services.Wrap(services.ErrValidation, t.name, "checks", "only 4K uploads are accepted", nil)
	}
	if _, ok := a4kTypeIDs[rec.Type]; !ok {
		return nil, services.Wrap(services.ErrValidation, t.name, "checks", "only DISC, REMUX, WEBDL and ENCODE uploads are accepted", nil)
	}

	var warnings []string
	if rec.IsDisc == meta.DiscNone && needsBitrateCheck(rec.Type) {
		kbps, ok := videoBitrateKbps(rec)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("could not determine video bitrate; it must exceed %d kbps for movies and %d kbps for TV", a4kMinMovieKbps, a4kMinTVKbps))
		} else {
			switch {
			case rec.Category == meta.CategoryMovie && kbps < a4kMinMovieKbps:
				return nil, services.Wrap(services.ErrValidation, t.name, "checks", fmt.Sprintf("video bitrate too low: %d kbps for movie uploads", kbps), nil)
			case rec.Category == meta.CategoryTV && kbps < a4kMinTVKbps:
				return nil, services.Wrap(services.ErrValidation, t.name, "checks", fmt.Sprintf("video bitrate too low: %d kbps for TV uploads", kbps), nil)
			}
		}
	}
	warnings = append(warnings, unapprovedImageHosts(rec.Images)...)
	return warnings, nil
}

func needsBitrateCheck(t meta.Type) bool {
	switch t {
	case meta.TypeEncode, meta.TypeWebRip, meta.TypeDVDRip, meta.TypeHDTV:
		return true
	}
	return false
}

// videoBitrateKbps reads the bitrate of the first video track that carries
// encoder settings.
func videoBitrateKbps(rec *meta.Record) (int64, bool) {
	for _, track := range rec.MediaInfo.Tracks() {
		if track.Type != meta.TrackVideo {
			continue
		}
		if strings.TrimSpace(track.EncodedLibrarySettings.String()) == "" {
			return 0, false
		}
		bps, ok := track.BitRate.Int()
		if !ok {
			return 0, false
		}
		return bps / 1000, true
	}
	return 0, false
}

func unapprovedImageHosts(images []meta.Image) []string {
	var warnings []string
	seen := map[string]struct{}{}
	for _, img := range images {
		u, err := url.Parse(img.ImgURL)
		if err != nil || u.Host == "" {
			continue
		}
		host := strings.ToLower(u.Hostname())
		if approvedImageHost(host) {
			continue
		}
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		warnings = append(warnings, fmt.Sprintf("screenshots hosted on %s are not approved", host))
	}
	return warnings
}

func approvedImageHost(host string) bool {
	for domain := range a4kImageHosts {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Form builds the upload request with the moderation-queue opt-in.
func (t *A4K) Form(rec *meta.Record, sub Submission) (Form, error) {
	return t.form(rec, sub, t, map[string]string{"modq": flag(t.cfg.ModQ)})
}

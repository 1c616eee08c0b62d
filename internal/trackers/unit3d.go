package trackers

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"marquee/internal/config"
	"marquee/internal/meta"
	"marquee/internal/naming"
	"marquee/internal/services"
)

var (
	unit3DCategoryIDs = map[meta.Category]string{
		meta.CategoryMovie: "1",
		meta.CategoryTV:    "2",
	}
	unit3DTypeIDs = map[meta.Type]string{
		meta.TypeDisc:   "1",
		meta.TypeRemux:  "2",
		meta.TypeEncode: "3",
		meta.TypeWebDL:  "4",
		meta.TypeWebRip: "5",
		meta.TypeHDTV:   "6",
	}
	unit3DResolutionIDs = map[meta.Resolution]string{
		"4320p": "1",
		"2160p": "2",
		"1080p": "3",
		"1080i": "4",
		"720p":  "5",
		"576p":  "6",
		"576i":  "7",
		"480p":  "8",
		"480i":  "9",
	}
)

const (
	unit3DDefaultTypeID       = "0"
	unit3DDefaultResolutionID = "10"
)

// unit3D implements the defaults shared by trackers running the UNIT3D
// platform. Concrete trackers embed it and override the tables they differ on.
type unit3D struct {
	name     string
	baseURL  string
	cfg      config.Tracker
	composer *naming.Composer
	banned   []string

	typeIDs       map[meta.Type]string
	resolutionIDs map[meta.Resolution]string
}

func newUnit3D(name, defaultBaseURL string, cfg config.Tracker, composer *naming.Composer) unit3D {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return unit3D{
		name:          name,
		baseURL:       base,
		cfg:           cfg,
		composer:      composer,
		typeIDs:       unit3DTypeIDs,
		resolutionIDs: unit3DResolutionIDs,
	}
}

func (u *unit3D) Name() string           { return u.name }
func (u *unit3D) SourceFlag() string     { return u.name }
func (u *unit3D) BannedGroups() []string { return u.banned }
func (u *unit3D) UploadURL() string      { return u.baseURL + "/api/torrents/upload" }

// TorrentURL returns the public page for a torrent id.
func (u *unit3D) TorrentURL(id string) string { return u.baseURL + "/torrents/" + id }

func (u *unit3D) CategoryID(rec *meta.Record) string {
	if id, ok := unit3DCategoryIDs[rec.Category]; ok {
		return id
	}
	return "0"
}

func (u *unit3D) TypeID(rec *meta.Record) string {
	if id, ok := u.typeIDs[rec.Type]; ok {
		return id
	}
	return unit3DDefaultTypeID
}

func (u *unit3D) ResolutionID(rec *meta.Record) string {
	if id, ok := u.resolutionIDs[rec.Resolution]; ok {
		return id
	}
	return unit3DDefaultResolutionID
}

func (u *unit3D) EditName(ctx context.Context, rec *meta.Record) string {
	if u.composer == nil {
		return naming.CollapseWhitespace(rec.Name)
	}
	return u.composer.Compose(ctx, rec).Name
}

func (u *unit3D) AdditionalChecks(*meta.Record) ([]string, error) { return nil, nil }

func (u *unit3D) Description(_ *meta.Record, base string) string { return base }

// form builds the standard UNIT3D upload form. extra fields are merged last.
func (u *unit3D) form(rec *meta.Record, sub Submission, ids idTables, extra map[string]string) (Form, error) {
	if strings.TrimSpace(u.cfg.APIKey) == "" {
		return Form{}, services.Wrap(services.ErrConfiguration, u.name, "form", "api key is not configured", nil)
	}
	if strings.TrimSpace(sub.TorrentPath) == "" {
		return Form{}, services.Wrap(services.ErrValidation, u.name, "form", "torrent file missing", nil)
	}
	fields := map[string]string{
		"name":             sub.Name,
		"description":      sub.Description,
		"mediainfo":        sub.MediaInfo,
		"bdinfo":           sub.BDInfo,
		"category_id":      ids.CategoryID(rec),
		"type_id":          ids.TypeID(rec),
		"resolution_id":    ids.ResolutionID(rec),
		"tmdb":             strconv.Itoa(rec.TMDB),
		"imdb":             strconv.Itoa(rec.IMDb),
		"tvdb":             "0",
		"mal":              "0",
		"igdb":             "0",
		"anonymous":        flag(u.cfg.Anon),
		"stream":           "0",
		"sd":               flag(rec.Resolution != "" && !rec.Resolution.AtLeast("720p")),
		"keywords":         "",
		"personal_release": "0",
		"internal":         "0",
		"featured":         "0",
		"free":             "0",
		"doubleup":         "0",
		"sticky":           "0",
	}
	if rec.Category == meta.CategoryTV {
		fields["season_number"] = strconv.Itoa(numberAfter(rec.Season, "S"))
		fields["episode_number"] = strconv.Itoa(numberAfter(rec.Episode, "E"))
	}
	if u.cfg.Draft {
		fields["draft_queue_opt_in"] = "1"
	}
	for k, v := range extra {
		fields[k] = v
	}
	return Form{
		URL:       u.UploadURL(),
		Query:     url.Values{"api_token": {strings.TrimSpace(u.cfg.APIKey)}},
		Fields:    fields,
		FileField: "torrent",
		FilePath:  sub.TorrentPath,
	}, nil
}

// idTables is satisfied by every UNIT3D tracker; embedding lets a tracker
// replace one table while keeping the others.
type idTables interface {
	CategoryID(rec *meta.Record) string
	TypeID(rec *meta.Record) string
	ResolutionID(rec *meta.Record) string
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// numberAfter parses "S01" style values; anything else yields 0.
func numberAfter(value, prefix string) int {
	value = strings.TrimSpace(strings.ToUpper(value))
	value = strings.TrimPrefix(value, prefix)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

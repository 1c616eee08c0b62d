package trackers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"marquee/internal/config"
	"marquee/internal/meta"
	"marquee/internal/naming"
	"marquee/internal/services"
)

const fldUploadURL = "https://flood.st/api/torrents/upload"

var fldBannedGroups = []string{
	"4K4U", "AOC", "C4K", "CRUCiBLE", "d3g", "EASports", "FGT", "MeGusta", "MezRips", "nikt0",
	"ProRes", "RARBG", "ReaLHD", "SasukeducK", "Sicario", "TEKNO3D", "Telly", "tigole", "TOMMY",
	"WKS", "x0r", "YIFY",
}

// dvdSources are the source strings after which FLD wants the video codec
// named ahead of the audio codec.
var dvdSources = map[string]struct{}{
	"PAL DVD": {}, "NTSC DVD": {}, "DVD": {}, "NTSC": {}, "PAL": {},
}

const fldScreenshotWidth = 350

// Signature appended to generated descriptions.
const Signature = "\n[align=center][size=1]Prepared with marquee[/size][/align]"

// FLD is Flood, which runs its own upload API rather than UNIT3D.
type FLD struct {
	cfg       config.Tracker
	uploadURL string
	composer  *naming.Composer
}

// NewFLD constructs the FLD adapter.
func NewFLD(cfg config.Tracker, composer *naming.Composer) *FLD {
	upload := fldUploadURL
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		upload = base + "/api/torrents/upload"
	}
	return &FLD{cfg: cfg, uploadURL: upload, composer: composer}
}

func (t *FLD) Name() string                                    { return "FLD" }
func (t *FLD) SourceFlag() string                              { return "FLD" }
func (t *FLD) UploadURL() string                               { return t.uploadURL }
func (t *FLD) BannedGroups() []string                          { return fldBannedGroups }
func (t *FLD) AdditionalChecks(*meta.Record) ([]string, error) { return nil, nil }

// EditName names the video codec ahead of the audio for DVD sources and
// spells Dolby Digital Plus as DDP.
func (t *FLD) EditName(ctx context.Context, rec *meta.Record) string {
	name := naming.CollapseWhitespace(rec.Name)
	if t.composer != nil {
		name = t.composer.Compose(ctx, rec).Name
	}
	if _, ok := dvdSources[strings.TrimSpace(rec.Source)]; ok {
		audio := naming.CollapseWhitespace(rec.Audio)
		if audio != "" && rec.VideoCodec != "" {
			name = strings.ReplaceAll(name, audio, rec.VideoCodec+" "+audio)
		}
	}
	return strings.ReplaceAll(name, "DD+", "DDP")
}

// MediaType maps the record category onto FLD's media types.
func (t *FLD) MediaType(rec *meta.Record) string {
	switch rec.Category {
	case meta.CategoryMovie:
		return "movie"
	case meta.CategoryTV:
		if rec.TVPack {
			return "show_season"
		}
		return "show_episode"
	}
	return "movie"
}

// PrefixedTMDBID returns the TMDB id in FLD's "movie/123" form.
func (t *FLD) PrefixedTMDBID(rec *meta.Record) string {
	if rec.Category == meta.CategoryTV {
		return "tv/" + strconv.Itoa(rec.TMDB)
	}
	return "movie/" + strconv.Itoa(rec.TMDB)
}

// Description renders the BBCode description: disc reports, the shared base
// text, an optional comparison block, the screenshot grid and the signature.
func (t *FLD) Description(rec *meta.Record, base string) string {
	var b strings.Builder
	writeDiscSpoilers(&b, rec.Discs)

	base = strings.NewReplacer("[user]", "", "[/user]", "").Replace(base)
	b.WriteString(strings.ReplaceAll(base, "[img]", "[img width=300]"))

	writeComparison(&b, rec.ComparisonGroups)
	writeScreenshots(&b, rec.Images, rec.Screens)
	b.WriteString(Signature)
	return b.String()
}

func writeDiscSpoilers(b *strings.Builder, discs []meta.Disc) {
	if len(discs) == 0 {
		return
	}
	if discs[0].Type == meta.DiscDVD {
		fmt.Fprintf(b, "[spoiler=VOB MediaInfo][code]%s[/code][/spoiler]\n", discs[0].VOBInfo)
	}
	for _, disc := range discs[1:] {
		switch disc.Type {
		case meta.DiscBDMV:
			name := disc.Name
			if name == "" {
				name = "BDINFO"
			}
			fmt.Fprintf(b, "[spoiler=%s][code]%s[/code][/spoiler]\n", name, disc.Summary)
		case meta.DiscDVD:
			fmt.Fprintf(b, "%s:\n", disc.Name)
			fmt.Fprintf(b, "[spoiler=%s][code]%s[/code][/spoiler] [spoiler=%s][code]%s[/code][/spoiler]\n",
				filepath.Base(disc.VOB), disc.VOBInfo, filepath.Base(disc.IFO), disc.IFOInfo)
		case meta.DiscHDDVD:
			fmt.Fprintf(b, "%s:\n", disc.Name)
			fmt.Fprintf(b, "[spoiler=%s][code]%s[/code][/spoiler]\n\n", filepath.Base(disc.LargestEVO), disc.EVOInfo)
		}
	}
}

// writeComparison interleaves the groups' screenshots so matching frames sit
// next to each other. Groups are ordered by their numeric key.
func writeComparison(b *strings.Builder, groups map[string]meta.ComparisonGroup) {
	if len(groups) == 0 {
		return
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		c, errC := strconv.Atoi(keys[j])
		if errA != nil || errC != nil {
			return keys[i] < keys[j]
		}
		return a < c
	})

	names := make([]string, 0, len(keys))
	perGroup := -1
	for _, k := range keys {
		group := groups[k]
		name := group.Name
		if name == "" {
			name = "Group " + k
		}
		names = append(names, name)
		if perGroup < 0 || len(group.URLs) < perGroup {
			perGroup = len(group.URLs)
		}
	}

	b.WriteString("[center]")
	fmt.Fprintf(b, "[comparison=%s]\n", strings.Join(names, ", "))
	for i := 0; i < perGroup; i++ {
		for _, k := range keys {
			if raw := groups[k].URLs[i].RawURL; raw != "" {
				b.WriteString(raw)
				b.WriteByte('\n')
			}
		}
	}
	b.WriteString("[/comparison][/center]\n\n")
}

// writeScreenshots lays screenshots out two per row. screens limits the count;
// zero or less keeps every image.
func writeScreenshots(b *strings.Builder, images []meta.Image, screens int) {
	if screens > 0 && screens < len(images) {
		images = images[:screens]
	}
	if len(images) == 0 {
		return
	}
	b.WriteString("[align=center]")
	for i, img := range images {
		fmt.Fprintf(b, "[url=%s][img width=%d]%s[/img][/url]", img.WebURL, fldScreenshotWidth, img.ImgURL)
		switch {
		case i == len(images)-1:
		case (i+1)%2 == 0:
			b.WriteString("\n\n")
		default:
			b.WriteByte(' ')
		}
	}
	b.WriteString("[/align]")
}

// Form builds the FLD upload request. The torrent travels as meta_info and
// the API key as a bearer token.
func (t *FLD) Form(rec *meta.Record, sub Submission) (Form, error) {
	key := strings.TrimSpace(t.cfg.APIKey)
	if key == "" {
		return Form{}, services.Wrap(services.ErrConfiguration, "FLD", "form", "api key is not configured", nil)
	}
	anon := ""
	if t.cfg.Anon {
		anon = "checked"
	}
	mediaInfo := sub.MediaInfo
	if sub.BDInfo != "" {
		mediaInfo = sub.BDInfo
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+key)
	return Form{
		URL:    t.uploadURL,
		Header: header,
		Fields: map[string]string{
			"name":        sub.Name,
			"imdb_id":     strconv.Itoa(rec.IMDb),
			"tmdb_id":     t.PrefixedTMDBID(rec),
			"anonymous":   anon,
			"description": sub.Description,
			"media_info":  mediaInfo,
			"media_type":  t.MediaType(rec),
		},
		FileField: "meta_info",
		FilePath:  sub.TorrentPath,
	}, nil
}

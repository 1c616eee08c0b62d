package meta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Type classifies how a release was produced.
type Type string

const (
	TypeDisc   Type = "DISC"
	TypeRemux  Type = "REMUX"
	TypeDVDRip Type = "DVDRIP"
	TypeBRRip  Type = "BRRIP"
	TypeEncode Type = "ENCODE"
	TypeHDTV   Type = "HDTV"
	TypeWebDL  Type = "WEBDL"
	TypeWebRip Type = "WEBRIP"
)

// Known reports whether t is one of the recognized release types.
func (t Type) Known() bool {
	switch t {
	case TypeDisc, TypeRemux, TypeDVDRip, TypeBRRip, TypeEncode, TypeHDTV, TypeWebDL, TypeWebRip:
		return true
	}
	return false
}

// DiscType names the on-disc structure of a DISC release.
type DiscType string

const (
	DiscNone  DiscType = ""
	DiscBDMV  DiscType = "BDMV"
	DiscDVD   DiscType = "DVD"
	DiscHDDVD DiscType = "HDDVD"
)

// Category is the top-level content kind.
type Category string

const (
	CategoryMovie Category = "MOVIE"
	CategoryTV    Category = "TV"
)

// Record is the metadata assembled upstream for one upload attempt.
type Record struct {
	UUID     string   `json:"uuid"`
	Name     string   `json:"name"`
	Path     string   `json:"path,omitempty"`
	Title    string   `json:"title"`
	Year     int      `json:"year,omitempty"`
	Tag      string   `json:"tag,omitempty"`
	Category Category `json:"category,omitempty"`

	Type       Type       `json:"type"`
	IsDisc     DiscType   `json:"is_disc,omitempty"`
	Resolution Resolution `json:"resolution,omitempty"`

	Source      string   `json:"source,omitempty"`
	Sources     []string `json:"sources,omitempty"`
	VideoCodec  string   `json:"video_codec,omitempty"`
	VideoEncode string   `json:"video_encode,omitempty"`
	Audio       string   `json:"audio,omitempty"`
	HDR         string   `json:"hdr,omitempty"`
	UHD         string   `json:"uhd,omitempty"`
	ThreeD      string   `json:"3D,omitempty"`
	Edition     string   `json:"edition,omitempty"`
	Repack      string   `json:"repack,omitempty"`
	Service     string   `json:"service,omitempty"`
	Region      string   `json:"region,omitempty"`
	DVDSize     string   `json:"dvd_size,omitempty"`
	Hybrid      bool     `json:"webdv,omitempty"`

	Season       string `json:"season,omitempty"`
	Episode      string `json:"episode,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
	Part         string `json:"part,omitempty"`
	TVPack       bool   `json:"tv_pack,omitempty"`

	AudioLanguages    []string   `json:"audio_languages,omitempty"`
	SubtitleLanguages []string   `json:"subtitle_languages,omitempty"`
	LanguageChecked   bool       `json:"language_checked,omitempty"`
	MediaInfo         *MediaInfo `json:"mediainfo,omitempty"`
	IMDbInfo          IMDbInfo   `json:"imdb_info"`

	TMDB int `json:"tmdb,omitempty"`
	IMDb int `json:"imdb,omitempty"`

	FileList []string `json:"filelist,omitempty"`
	Discs    []Disc   `json:"discs,omitempty"`

	Images           []Image                    `json:"image_list,omitempty"`
	Screens          int                        `json:"screens,omitempty"`
	ComparisonGroups map[string]ComparisonGroup `json:"comparison_groups,omitempty"`
}

// IMDbInfo carries the subset of IMDb data the naming rules consult.
type IMDbInfo struct {
	AKAs []AKA `json:"akas,omitempty"`
}

// AKA is an alternate title scoped by country and language.
type AKA struct {
	Title      string   `json:"title"`
	Country    string   `json:"country,omitempty"`
	Language   string   `json:"language,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

// Disc summarises one disc structure found in the release.
type Disc struct {
	Type       DiscType `json:"type"`
	Name       string   `json:"name,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	VOB        string   `json:"vob,omitempty"`
	VOBInfo    string   `json:"vob_mi,omitempty"`
	IFO        string   `json:"ifo,omitempty"`
	IFOInfo    string   `json:"ifo_mi,omitempty"`
	LargestEVO string   `json:"largest_evo,omitempty"`
	EVOInfo    string   `json:"evo_mi,omitempty"`
}

// Image is an uploaded screenshot.
type Image struct {
	WebURL string `json:"web_url"`
	ImgURL string `json:"img_url"`
	RawURL string `json:"raw_url,omitempty"`
}

// ComparisonGroup holds screenshots for one side of a comparison.
type ComparisonGroup struct {
	Name string  `json:"name"`
	URLs []Image `json:"urls"`
}

// BaseName returns the release file or folder name without directories.
func (r *Record) BaseName() string {
	if r == nil {
		return ""
	}
	if p := strings.TrimSpace(r.Path); p != "" {
		return filepath.Base(p)
	}
	if len(r.FileList) > 0 {
		return filepath.Base(r.FileList[0])
	}
	return strings.TrimSpace(r.Name)
}

// EnsureUUID assigns a random identifier when the record has none.
func (r *Record) EnsureUUID() string {
	if strings.TrimSpace(r.UUID) == "" {
		r.UUID = uuid.NewString()
	}
	return r.UUID
}

// Load reads a JSON metadata record from disk.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	rec.EnsureUUID()
	return &rec, nil
}

// Save writes the record as indented JSON.
func Save(path string, rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

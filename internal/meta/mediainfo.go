package meta

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Track types reported by mediainfo.
const (
	TrackGeneral = "General"
	TrackVideo   = "Video"
	TrackAudio   = "Audio"
	TrackText    = "Text"
	TrackMenu    = "Menu"
)

// MediaInfo mirrors the JSON emitted by `mediainfo --Output=JSON`.
type MediaInfo struct {
	Media Media `json:"media"`
}

// Media holds the track list.
type Media struct {
	Ref    string  `json:"@ref,omitempty"`
	Tracks []Track `json:"track"`
}

// Track is one stream entry. Only the fields consulted downstream are decoded.
type Track struct {
	Type                   string     `json:"@type"`
	Title                  FlexString `json:"Title,omitempty"`
	Language               FlexString `json:"Language,omitempty"`
	Format                 FlexString `json:"Format,omitempty"`
	BitRate                FlexString `json:"BitRate,omitempty"`
	EncodedLibrarySettings FlexString `json:"Encoded_Library_Settings,omitempty"`
	FileExtension          FlexString `json:"FileExtension,omitempty"`
}

// Tracks returns the track list, tolerating a nil receiver.
func (m *MediaInfo) Tracks() []Track {
	if m == nil {
		return nil
	}
	return m.Media.Tracks
}

// FileExtension returns the container extension from the General track.
func (m *MediaInfo) FileExtension() string {
	for _, track := range m.Tracks() {
		if track.Type == TrackGeneral {
			return strings.TrimPrefix(strings.TrimSpace(track.FileExtension.String()), ".")
		}
	}
	return ""
}

// auxiliaryTrackMarkers flag audio tracks that do not count as a dub.
var auxiliaryTrackMarkers = []string{"commentary", "kommentar", "music", "director", "cast"}

// IsAuxiliary reports whether the track title marks a commentary, isolated
// score or cast track.
func (t Track) IsAuxiliary() bool {
	title := strings.ToLower(strings.TrimSpace(t.Title.String()))
	if title == "" {
		return false
	}
	for _, marker := range auxiliaryTrackMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// FlexString decodes a JSON value that mediainfo may emit as a string, a
// number, or an object wrapping the text (e.g. {"#value": "de"}).
type FlexString string

// String returns the decoded text.
func (f FlexString) String() string { return string(f) }

// UnmarshalJSON accepts strings, numbers, objects and null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*f = FlexString(objectText(obj))
	case '[':
		var items []FlexString
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			if item != "" {
				*f = item
				return nil
			}
		}
		*f = ""
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			// booleans and anything else degrade to their literal text
			*f = FlexString(string(data))
			return nil
		}
		*f = FlexString(n.String())
	}
	return nil
}

var objectTextKeys = []string{"#value", "#text", "value", "Value", "String", "Language"}

func objectText(obj map[string]json.RawMessage) string {
	for _, key := range objectTextKeys {
		if raw, ok := obj[key]; ok {
			var v FlexString
			if err := v.UnmarshalJSON(raw); err == nil && v != "" {
				return string(v)
			}
		}
	}
	return ""
}

// Int parses the value as an integer, returning ok=false when it is not numeric.
func (f FlexString) Int() (int64, bool) {
	value := strings.TrimSpace(string(f))
	if value == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, true
	}
	if fl, err := strconv.ParseFloat(value, 64); err == nil {
		return int64(fl), true
	}
	return 0, false
}

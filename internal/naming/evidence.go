package naming

import (
	"marquee/internal/language"
	"marquee/internal/meta"
)

// HasTargetLanguageAudio reports whether a primary audio track is in the
// target language. Commentary, music and cast tracks are ignored, as are the
// leading General and Video entries of a file-level mediainfo report.
func HasTargetLanguageAudio(rec *meta.Record, code string) bool {
	if rec == nil {
		return false
	}
	code = language.NormalizeCode(code)
	if code == "" {
		return false
	}
	tracks := rec.MediaInfo.Tracks()
	start := 0
	if len(tracks) >= 2 && tracks[0].Type == meta.TrackGeneral && tracks[1].Type == meta.TrackVideo {
		start = 2
	}
	for _, track := range tracks[start:] {
		if track.Type != meta.TrackAudio {
			continue
		}
		if track.IsAuxiliary() {
			continue
		}
		if language.NormalizeCode(track.Language.String()) == code {
			return true
		}
	}
	return false
}

// HasTargetLanguageSubtitles reports whether any text track is in the target language.
func HasTargetLanguageSubtitles(rec *meta.Record, code string) bool {
	if rec == nil {
		return false
	}
	code = language.NormalizeCode(code)
	if code == "" {
		return false
	}
	for _, track := range rec.MediaInfo.Tracks() {
		if track.Type != meta.TrackText {
			continue
		}
		if language.NormalizeCode(track.Language.String()) == code {
			return true
		}
	}
	return false
}

// Package langdetect fills the audio and subtitle language lists of a
// metadata record from the evidence attached to it.
//
// Evidence comes from the JSON mediainfo report, the BDInfo summaries and
// text mediainfo dumps of disc releases, and, when neither is present, a
// fresh `mediainfo --Output=JSON` run against the release file.
package langdetect

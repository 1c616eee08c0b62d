package naming

import (
	"testing"

	"marquee/internal/meta"
)

func TestReleaseGroup(t *testing.T) {
	tests := []struct {
		name string
		rec  *meta.Record
		want string
	}{
		{name: "nil record", rec: nil, want: NoGroup},
		{name: "explicit tag", rec: &meta.Record{Tag: "FraMeSToR"}, want: "FraMeSToR"},
		{name: "explicit tag with dash", rec: &meta.Record{Tag: "-SPARKS"}, want: "SPARKS"},
		{name: "explicit placeholder", rec: &meta.Record{Tag: "-NOGRP"}, want: NoGroup},
		{name: "explicit unknown", rec: &meta.Record{Tag: "unknown"}, want: NoGroup},
		{name: "explicit with space", rec: &meta.Record{Tag: "Some Group"}, want: NoGroup},
		{name: "explicit allow-listed", rec: &meta.Record{Tag: "VU1080"}, want: "VU1080"},
		{
			name: "derived allow-listed from path",
			rec:  &meta.Record{Path: "/data/Movie.2024.1080p.BluRay.x264-VU1080.mkv"},
			want: "VU1080",
		},
		{
			name: "derived allow-listed case-insensitive",
			rec:  &meta.Record{Name: "Movie.2024.2160p.UHD.BluRay-untouched"},
			want: "untouched",
		},
		{
			name: "derived codec rejected",
			rec:  &meta.Record{Path: "/data/Movie.2024.x264.mkv"},
			want: NoGroup,
		},
		{
			name: "derived arbitrary group rejected",
			rec:  &meta.Record{Path: "/data/Movie.2024.1080p.BluRay.x264-SPARKS.mkv"},
			want: NoGroup,
		},
		{
			name: "derived from file list",
			rec:  &meta.Record{FileList: []string{"/data/Show.S01E01.720p.WEB-DL-VU720.mp4"}},
			want: "VU720",
		},
		{name: "empty record", rec: &meta.Record{}, want: NoGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReleaseGroup(tt.rec); got != tt.want {
				t.Fatalf("ReleaseGroup() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripExtension(t *testing.T) {
	tests := []struct {
		base, evidence, want string
	}{
		{"Movie-VU.mkv", "", "Movie-VU"},
		{"Movie-VU.xyz", "xyz", "Movie-VU"},
		{"Movie-VU.xyz", "", "Movie-VU.xyz"},
		{"Movie-VU", "", "Movie-VU"},
	}
	for _, tt := range tests {
		if got := stripExtension(tt.base, tt.evidence); got != tt.want {
			t.Fatalf("stripExtension(%q, %q) = %q, want %q", tt.base, tt.evidence, got, tt.want)
		}
	}
}

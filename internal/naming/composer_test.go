package naming

import (
	"context"
	"errors"
	"strings"
	"testing"

	"marquee/internal/meta"
)

type countingDetector struct {
	calls int
	langs []string
	err   error
}

func (d *countingDetector) EnsureLanguages(_ context.Context, rec *meta.Record, _ string) error {
	d.calls++
	if d.err != nil {
		return d.err
	}
	rec.AudioLanguages = d.langs
	return nil
}

func TestComposeRemuxEndToEnd(t *testing.T) {
	rec := &meta.Record{
		Title:          "Movie",
		Year:           2024,
		Type:           meta.TypeRemux,
		Resolution:     "2160p",
		Source:         "BluRay",
		Audio:          "DTS-HD MA 5.1",
		AudioLanguages: []string{"German", "English"},
	}
	result := NewComposer(Options{Tracker: "RHD"}).Compose(context.Background(), rec)

	if result.Base != "Movie 2024 GERMAN DL 2160p BluRay REMUX DTS-HD MA 5.1" {
		t.Fatalf("base = %q", result.Base)
	}
	if result.Name != result.Base+"-NOGRP" {
		t.Fatalf("name = %q", result.Name)
	}
	if result.LanguageTag != "GERMAN DL" || result.Group != NoGroup || result.Fallback {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Template != DefaultTemplateVersion+"/"+KeyRemux {
		t.Fatalf("template = %q", result.Template)
	}
}

func TestComposeByType(t *testing.T) {
	tests := []struct {
		name string
		rec  *meta.Record
		want string
	}{
		{
			name: "web-dl episode",
			rec: &meta.Record{
				Title: "Show", Type: meta.TypeWebDL, Season: "S01", Episode: "E02",
				Resolution: "1080p", Service: "NF", Audio: "DDP 5.1", VideoEncode: "H.264",
				AudioLanguages: []string{"German"}, Tag: "GRP",
			},
			want: "Show S01E02 GERMAN 1080p NF WEB-DL DDP 5.1 H.264-GRP",
		},
		{
			name: "webrip label",
			rec: &meta.Record{
				Title: "Show", Year: 2020, Type: meta.TypeWebRip, Resolution: "720p",
				Service: "AMZN", Audio: "AAC 2.0", VideoEncode: "x264", Tag: "GRP",
			},
			want: "Show 2020 720p AMZN WEBRip AAC 2.0 x264-GRP",
		},
		{
			name: "bdmv disc",
			rec: &meta.Record{
				Title: "Movie", Year: 2019, Type: meta.TypeDisc, IsDisc: meta.DiscBDMV,
				Resolution: "2160p", Region: "GER", UHD: "UHD", Source: "Blu-ray", HDR: "HDR10",
				VideoCodec: "HEVC", Audio: "TrueHD Atmos 7.1", Tag: "GRP",
			},
			want: "Movie 2019 2160p GER UHD Blu-ray HDR10 HEVC TrueHD Atmos 7.1-GRP",
		},
		{
			name: "dvd disc splits region from source",
			rec: &meta.Record{
				Title: "Film", Year: 2001, Type: meta.TypeDisc, IsDisc: meta.DiscDVD,
				Resolution: "576p", Source: "PAL DVD", DVDSize: "DVD9", Audio: "DD 5.1", Tag: "GRP",
			},
			want: "Film 2001 576p PAL DVD DVD9 DD 5.1-GRP",
		},
		{
			name: "encode hybrid",
			rec: &meta.Record{
				Title: "Movie", Year: 2010, Type: meta.TypeEncode, Resolution: "1080p",
				Source: "BluRay", Sources: []string{"BluRay", "WEB"}, Audio: "DTS 5.1",
				VideoEncode: "x264", Tag: "GRP",
			},
			want: "Movie 2010 Hybrid 1080p BluRay DTS 5.1 x264-GRP",
		},
		{
			name: "edition suppresses hybrid",
			rec: &meta.Record{
				Title: "Movie", Year: 2010, Type: meta.TypeEncode, Resolution: "1080p",
				Edition: "Directors Cut", Hybrid: true, Source: "BluRay", Audio: "DTS 5.1",
				VideoEncode: "x264", Tag: "GRP",
			},
			want: "Movie 2010 Directors Cut 1080p BluRay DTS 5.1 x264-GRP",
		},
		{
			name: "hybrid already in title",
			rec: &meta.Record{
				Title: "Movie Hybrid", Year: 2010, Type: meta.TypeEncode, Resolution: "1080p",
				Hybrid: true, Source: "BluRay", VideoEncode: "x264", Tag: "GRP",
			},
			want: "Movie Hybrid 2010 1080p BluRay x264-GRP",
		},
		{
			name: "dual-audio marker stripped",
			rec: &meta.Record{
				Title: "Movie", Year: 2005, Type: meta.TypeBRRip, Resolution: "720p",
				Audio: "Dual-Audio AC3 5.1", VideoEncode: "x264", Tag: "GRP",
			},
			want: "Movie 2005 720p BRRip AC3 5.1 x264-GRP",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewComposer(Options{}).Compose(context.Background(), tt.rec)
			if got.Name != tt.want {
				t.Fatalf("Compose() = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestComposeFallback(t *testing.T) {
	tests := []struct {
		name string
		rec  *meta.Record
	}{
		{name: "unknown type", rec: &meta.Record{Name: "  Some   Release  Name ", Type: meta.Type("SCREENER"), Tag: "GRP"}},
		{name: "disc without structure", rec: &meta.Record{Name: "Some Release Name", Type: meta.TypeDisc, Tag: "GRP"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewComposer(Options{}).Compose(context.Background(), tt.rec)
			if !got.Fallback {
				t.Fatal("expected fallback")
			}
			if got.Name != "Some Release Name" {
				t.Fatalf("name = %q", got.Name)
			}
		})
	}
}

func TestComposeSubtitledOverride(t *testing.T) {
	rec := &meta.Record{
		Title: "Movie", Year: 2024, Type: meta.TypeEncode, Resolution: "1080p", Source: "BluRay",
		AudioLanguages: []string{"English"},
		MediaInfo: &meta.MediaInfo{Media: meta.Media{Tracks: []meta.Track{
			{Type: meta.TrackGeneral}, {Type: meta.TrackVideo},
			{Type: meta.TrackAudio, Language: "en"},
			{Type: meta.TrackText, Language: "de"},
		}}},
	}
	got := NewComposer(Options{}).Compose(context.Background(), rec)
	if got.LanguageTag != "GERMAN SUBBED" {
		t.Fatalf("language tag = %q", got.LanguageTag)
	}
	if !strings.Contains(got.Name, "GERMAN SUBBED") {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestComposeTargetAudioSuppressesSubbed(t *testing.T) {
	rec := &meta.Record{
		Title: "Movie", Type: meta.TypeEncode,
		AudioLanguages:    []string{"German"},
		SubtitleLanguages: []string{"German"},
	}
	got := NewComposer(Options{}).Compose(context.Background(), rec)
	if got.LanguageTag != "GERMAN" {
		t.Fatalf("language tag = %q", got.LanguageTag)
	}
}

func TestComposeCallsDetectorOnce(t *testing.T) {
	detector := &countingDetector{langs: []string{"de", "en"}}
	composer := NewComposer(Options{}, WithDetector(detector))
	rec := &meta.Record{Title: "Movie", Year: 2024, Type: meta.TypeRemux, Resolution: "1080p"}

	first := composer.Compose(context.Background(), rec)
	second := composer.Compose(context.Background(), rec)
	if detector.calls != 1 {
		t.Fatalf("detector calls = %d, want 1", detector.calls)
	}
	if first.LanguageTag != "GERMAN DL" || second.Name != first.Name {
		t.Fatalf("unexpected results %q / %q", first.Name, second.Name)
	}
}

func TestComposeDetectorFailureDegrades(t *testing.T) {
	detector := &countingDetector{err: errors.New("mediainfo missing")}
	rec := &meta.Record{Title: "Movie", Year: 2024, Type: meta.TypeRemux, Resolution: "1080p", Source: "BluRay"}
	got := NewComposer(Options{}, WithDetector(detector)).Compose(context.Background(), rec)
	if got.Name != "Movie 2024 1080p BluRay REMUX-NOGRP" {
		t.Fatalf("name = %q", got.Name)
	}
	if !rec.LanguageChecked {
		t.Fatal("expected language check to be marked")
	}
}

func TestComposeGroupOptions(t *testing.T) {
	rec := func() *meta.Record {
		return &meta.Record{Title: "Movie", Year: 2024, Type: meta.TypeRemux, Resolution: "1080p"}
	}
	omit := NewComposer(Options{OmitMissingGroup: true}).Compose(context.Background(), rec())
	if omit.Name != "Movie 2024 1080p REMUX" {
		t.Fatalf("omit name = %q", omit.Name)
	}

	tagged := rec()
	tagged.Tag = "GRP"
	dotted := NewComposer(Options{GroupSeparator: "."}).Compose(context.Background(), tagged)
	if dotted.Name != "Movie 2024 1080p REMUX.GRP" {
		t.Fatalf("dotted name = %q", dotted.Name)
	}
}

func TestComposeLocalizedTitle(t *testing.T) {
	rec := &meta.Record{
		Title: "The Movie", Year: 2024, Type: meta.TypeRemux, Resolution: "1080p",
		IMDbInfo: meta.IMDbInfo{AKAs: []meta.AKA{
			{Title: "Der Film (AT)", Country: "Austria", Language: "German"},
			{Title: "Der Film", Country: "Germany"},
		}},
	}
	localized := NewComposer(Options{LocalizedTitle: true}).Compose(context.Background(), rec)
	if !strings.HasPrefix(localized.Name, "Der Film 2024") {
		t.Fatalf("localized name = %q", localized.Name)
	}
	plain := NewComposer(Options{}).Compose(context.Background(), rec)
	if !strings.HasPrefix(plain.Name, "The Movie 2024") {
		t.Fatalf("plain name = %q", plain.Name)
	}
}

func TestComposeTemplateOverride(t *testing.T) {
	set, err := LoadTemplates(DefaultTemplateVersion, map[string][]string{"web": {"title", "resolution"}})
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	rec := &meta.Record{Title: "Show", Type: meta.TypeWebDL, Resolution: "1080p", Service: "NF", Tag: "GRP"}
	got := NewComposer(Options{Templates: set}).Compose(context.Background(), rec)
	if got.Name != "Show 1080p-GRP" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestComposeNeverLeavesGaps(t *testing.T) {
	records := []*meta.Record{
		{Type: meta.TypeRemux},
		{Title: " Movie ", Type: meta.TypeEncode, Audio: "  "},
		{Title: "Movie", Type: meta.TypeWebDL, Episode: "E01", Service: "", Audio: "Dual-Audio"},
		{Title: "Movie", Type: meta.TypeDisc, IsDisc: meta.DiscHDDVD, Source: "HD DVD", Audio: "DD+  5.1"},
		{Title: "Movie", Type: meta.TypeDVDRip, Season: "S02", Audio: "AC3", VideoEncode: "XviD"},
	}
	for _, rec := range records {
		got := NewComposer(Options{}).Compose(context.Background(), rec)
		if strings.Contains(got.Name, "  ") || strings.TrimSpace(got.Name) != got.Name {
			t.Fatalf("name %q has stray whitespace", got.Name)
		}
	}
}

func TestAuditFlagsMismatch(t *testing.T) {
	issues := Audit("Movie 1999 1080p BluRay x264-GRP", &meta.Record{Year: 2024, Resolution: "1080p"})
	if len(issues) == 0 {
		t.Fatal("expected year mismatch to be reported")
	}
	if Audit("", &meta.Record{Year: 2024}) != nil {
		t.Fatal("empty name should not be audited")
	}
}

package trackers

import (
	"context"
	"errors"
	"testing"

	"marquee/internal/config"
	"marquee/internal/meta"
	"marquee/internal/naming"
	"marquee/internal/services"
)

func TestFLDEditName(t *testing.T) {
	fld := NewFLD(config.Tracker{}, naming.NewComposer(naming.Options{Tracker: "FLD"}))
	tests := []struct {
		name string
		rec  *meta.Record
		want string
	}{
		{
			name: "dvd gains video codec",
			rec: &meta.Record{
				Title: "Film", Year: 2001, Type: meta.TypeDisc, IsDisc: meta.DiscDVD, Resolution: "576p",
				Source: "PAL DVD", VideoCodec: "MPEG-2", Audio: "DD 5.1", Tag: "GRP",
			},
			want: "Film 2001 576p PAL DVD MPEG-2 DD 5.1-GRP",
		},
		{
			name: "dolby digital plus renamed",
			rec: &meta.Record{
				Title: "Show", Year: 2022, Type: meta.TypeWebDL, Season: "S01", Episode: "E01",
				Resolution: "1080p", Service: "AMZN", Audio: "DD+ 5.1", VideoEncode: "H.264", Tag: "GRP",
			},
			want: "Show 2022 S01E01 1080p AMZN WEB-DL DDP 5.1 H.264-GRP",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fld.EditName(context.Background(), tt.rec); got != tt.want {
				t.Fatalf("EditName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFLDMediaTypeAndTMDB(t *testing.T) {
	fld := NewFLD(config.Tracker{}, nil)
	tests := []struct {
		rec       *meta.Record
		mediaType string
		tmdb      string
	}{
		{&meta.Record{Category: meta.CategoryMovie, TMDB: 603}, "movie", "movie/603"},
		{&meta.Record{Category: meta.CategoryTV, TMDB: 1399, TVPack: true}, "show_season", "tv/1399"},
		{&meta.Record{Category: meta.CategoryTV, TMDB: 1399}, "show_episode", "tv/1399"},
		{&meta.Record{}, "movie", "movie/0"},
	}
	for _, tt := range tests {
		if got := fld.MediaType(tt.rec); got != tt.mediaType {
			t.Fatalf("MediaType = %q, want %q", got, tt.mediaType)
		}
		if got := fld.PrefixedTMDBID(tt.rec); got != tt.tmdb {
			t.Fatalf("PrefixedTMDBID = %q, want %q", got, tt.tmdb)
		}
	}
}

func TestFLDDescription(t *testing.T) {
	rec := &meta.Record{
		Discs: []meta.Disc{
			{Type: meta.DiscBDMV, Name: "Disc 1", Summary: "S1"},
			{Type: meta.DiscBDMV, Summary: "S2"},
		},
		ComparisonGroups: map[string]meta.ComparisonGroup{
			"2": {Name: "Encode", URLs: []meta.Image{{RawURL: "r2a"}, {RawURL: "r2b"}}},
			"1": {Name: "Source", URLs: []meta.Image{{RawURL: "r1a"}}},
		},
		Images: []meta.Image{
			{WebURL: "w1", ImgURL: "i1"},
			{WebURL: "w2", ImgURL: "i2"},
			{WebURL: "w3", ImgURL: "i3"},
			{WebURL: "w4", ImgURL: "i4"},
		},
		Screens: 3,
	}
	got := NewFLD(config.Tracker{}, nil).Description(rec, "[user]Notes[/user] [img]cover[/img]\n")
	want := "[spoiler=BDINFO][code]S2[/code][/spoiler]\n" +
		"Notes [img width=300]cover[/img]\n" +
		"[center][comparison=Source, Encode]\nr1a\nr2a\n[/comparison][/center]\n\n" +
		"[align=center]" +
		"[url=w1][img width=350]i1[/img][/url] " +
		"[url=w2][img width=350]i2[/img][/url]\n\n" +
		"[url=w3][img width=350]i3[/img][/url]" +
		"[/align]" + Signature
	if got != want {
		t.Fatalf("Description mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestFLDDescriptionDVD(t *testing.T) {
	rec := &meta.Record{Discs: []meta.Disc{
		{Type: meta.DiscDVD, VOBInfo: "main vob"},
		{Type: meta.DiscDVD, Name: "Bonus", VOB: "/d/VIDEO_TS/VTS_02_1.VOB", VOBInfo: "vob2", IFO: "/d/VIDEO_TS/VTS_02_0.IFO", IFOInfo: "ifo2"},
	}}
	got := NewFLD(config.Tracker{}, nil).Description(rec, "")
	want := "[spoiler=VOB MediaInfo][code]main vob[/code][/spoiler]\n" +
		"Bonus:\n[spoiler=VTS_02_1.VOB][code]vob2[/code][/spoiler] [spoiler=VTS_02_0.IFO][code]ifo2[/code][/spoiler]\n" +
		Signature
	if got != want {
		t.Fatalf("Description mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestFLDForm(t *testing.T) {
	fld := NewFLD(config.Tracker{APIKey: " key ", Anon: true}, nil)
	rec := &meta.Record{Category: meta.CategoryTV, TMDB: 1399, IMDb: 944947}
	form, err := fld.Form(rec, Submission{Name: "n", MediaInfo: "mi", BDInfo: "bd", TorrentPath: "t.torrent"})
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	if form.Header.Get("Authorization") != "Bearer key" {
		t.Fatalf("authorization = %q", form.Header.Get("Authorization"))
	}
	if form.URL != fldUploadURL || form.FileField != "meta_info" {
		t.Fatalf("unexpected form %+v", form)
	}
	if form.Fields["anonymous"] != "checked" || form.Fields["media_info"] != "bd" || form.Fields["tmdb_id"] != "tv/1399" {
		t.Fatalf("unexpected fields %v", form.Fields)
	}
	if _, err := NewFLD(config.Tracker{}, nil).Form(rec, Submission{}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

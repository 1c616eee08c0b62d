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

func TestRHDResolutionIDs(t *testing.T) {
	rhd := NewRHD(config.Tracker{}, nil)
	tests := map[meta.Resolution]string{
		"8640p": "10", "4320p": "1", "2160p": "2", "1440p": "3", "1080p": "3",
		"1080i": "4", "720p": "5", "576p": "12", "576i": "13", "540p": "16",
		"480p": "11", "480i": "18", "384p": "14", "": "10", "999p": "10",
	}
	for res, want := range tests {
		if got := rhd.ResolutionID(&meta.Record{Resolution: res}); got != want {
			t.Fatalf("ResolutionID(%q) = %q, want %q", res, got, want)
		}
	}
	if got := rhd.TypeID(&meta.Record{Type: meta.TypeWebRip}); got != "5" {
		t.Fatalf("RHD keeps the UNIT3D type table, got %q", got)
	}
}

func TestBannedGroupsCaseInsensitive(t *testing.T) {
	rhd := NewRHD(config.Tracker{}, nil)
	_, err := Validate(rhd, &meta.Record{Tag: "whistler"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected banned group rejection, got %v", err)
	}
	if _, err := Validate(rhd, &meta.Record{Tag: "FraMeSToR"}); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if _, err := Validate(rhd, &meta.Record{}); err != nil {
		t.Fatalf("missing group must not be treated as banned: %v", err)
	}
}

func TestUnit3DEditNameUsesComposer(t *testing.T) {
	rec := &meta.Record{
		Name: "Movie.2024.1080p.BluRay.REMUX-GRP", Title: "Movie", Year: 2024,
		Type: meta.TypeRemux, Resolution: "1080p", Source: "BluRay", Tag: "GRP",
	}
	rhd := NewRHD(config.Tracker{}, naming.NewComposer(naming.Options{Tracker: "RHD"}))
	if got := rhd.EditName(context.Background(), rec); got != "Movie 2024 1080p BluRay REMUX-GRP" {
		t.Fatalf("EditName = %q", got)
	}
	bare := NewRHD(config.Tracker{}, nil)
	if got := bare.EditName(context.Background(), rec); got != rec.Name {
		t.Fatalf("EditName without composer = %q", got)
	}
}

func TestUnit3DForm(t *testing.T) {
	rhd := NewRHD(config.Tracker{APIKey: "secret", Anon: true, Draft: true, BaseURL: "https://rhd.example/"}, nil)
	rec := &meta.Record{
		Category: meta.CategoryTV, Type: meta.TypeWebDL, Resolution: "576p",
		Season: "S02", Episode: "E05", TMDB: 1399, IMDb: 944947,
	}
	form, err := rhd.Form(rec, Submission{Name: "Show S02E05", TorrentPath: "/tmp/x.torrent"})
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	if form.URL != "https://rhd.example/api/torrents/upload" {
		t.Fatalf("url = %q", form.URL)
	}
	if form.Query.Get("api_token") != "secret" || form.FileField != "torrent" {
		t.Fatalf("unexpected auth/file: %+v", form)
	}
	want := map[string]string{
		"name": "Show S02E05", "category_id": "2", "type_id": "4", "resolution_id": "12",
		"tmdb": "1399", "imdb": "944947", "anonymous": "1", "sd": "1",
		"season_number": "2", "episode_number": "5", "draft_queue_opt_in": "1",
	}
	for k, v := range want {
		if form.Fields[k] != v {
			t.Fatalf("field %s = %q, want %q", k, form.Fields[k], v)
		}
	}
}

func TestUnit3DFormRequiresKeyAndTorrent(t *testing.T) {
	_, err := NewRHD(config.Tracker{}, nil).Form(&meta.Record{}, Submission{TorrentPath: "x"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	_, err = NewRHD(config.Tracker{APIKey: "k"}, nil).Form(&meta.Record{}, Submission{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"marquee/internal/history"
	"marquee/internal/testsupport"
)

func TestRecordAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []*history.Entry{
		{RecordUUID: "rec-1", Tracker: "rhd", Name: "Movie 2024 1080p WEB-DL-NOGRP", CreatedAt: base},
		{RecordUUID: "rec-1", Tracker: "A4K", Name: "Movie 2024 2160p WEB-DL-NOGRP", Status: history.StatusRejected, Message: "not 4K", CreatedAt: base.Add(time.Second)},
		{RecordUUID: "rec-2", Tracker: "FLD", Name: "Other 2023 1080p BluRay-GRP", Status: history.StatusUploaded, TorrentURL: "https://flood.st/torrents/7", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if entry.ID == "" {
			t.Fatal("expected an ID to be assigned")
		}
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Tracker != "FLD" || all[2].Tracker != "RHD" {
		t.Fatalf("expected newest first with upper-cased trackers, got %q..%q", all[0].Tracker, all[2].Tracker)
	}
	if all[2].Status != history.StatusPrepared {
		t.Fatalf("expected default status prepared, got %q", all[2].Status)
	}
	if all[0].TorrentURL != "https://flood.st/torrents/7" || !all[0].CreatedAt.Equal(base.Add(2*time.Second)) {
		t.Fatalf("unexpected round trip: %+v", all[0])
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 || limited[1].Tracker != "A4K" {
		t.Fatalf("unexpected limited list: %+v", limited)
	}
}

func TestLatest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, status := range []history.Status{history.StatusPrepared, history.StatusFailed, history.StatusUploaded} {
		err := store.Record(ctx, &history.Entry{
			RecordUUID: "rec-1",
			Tracker:    "RHD",
			Name:       "Movie 2024 1080p WEB-DL-NOGRP",
			Status:     status,
			CreatedAt:  base.Add(time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	latest, err := store.Latest(ctx, "rec-1", "rhd")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Status != history.StatusUploaded {
		t.Fatalf("expected uploaded entry, got %+v", latest)
	}

	missing, err := store.Latest(ctx, "rec-1", "FLD")
	if err != nil {
		t.Fatalf("Latest missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown tracker, got %+v", missing)
	}
}

func TestRecordRequiresTrackerAndName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	if err := store.Record(context.Background(), &history.Entry{Name: "x"}); err == nil {
		t.Fatal("expected error without tracker")
	}
	if err := store.Record(context.Background(), &history.Entry{Tracker: "RHD"}); err == nil {
		t.Fatal("expected error without name")
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(context.Background(), &history.Entry{Tracker: "RHD", Name: "Movie"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected persisted row, got %d", len(entries))
	}
}

func TestOpenFromConfigDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	store, err := history.OpenFromConfig(cfg)
	if err != nil {
		t.Fatalf("OpenFromConfig: %v", err)
	}
	if store != nil {
		t.Fatal("expected nil store when history is disabled")
	}
	// A nil store accepts records so callers need no guard.
	if err := store.Record(context.Background(), &history.Entry{Tracker: "RHD", Name: "Movie"}); err != nil {
		t.Fatalf("nil store Record: %v", err)
	}
}

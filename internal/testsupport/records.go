package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"marquee/internal/meta"
)

// NewRemuxRecord returns a German/English UHD remux record with its release
// file written under a temp directory.
func NewRemuxRecord(t testing.TB) *meta.Record {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "Movie.2024.2160p.UHD.BluRay.REMUX.DTS-HD.MA.5.1-NOGRP.mkv")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x42}, 1024), 0o644); err != nil {
		t.Fatalf("write release file: %v", err)
	}

	return &meta.Record{
		UUID:           "rec-" + filepath.Base(dir),
		Name:           "Movie 2024 2160p UHD BluRay REMUX DTS-HD MA 5.1",
		Path:           path,
		Title:          "Movie",
		Year:           2024,
		Category:       meta.CategoryMovie,
		Type:           meta.TypeRemux,
		Resolution:     "2160p",
		Source:         "BluRay",
		VideoCodec:     "HEVC",
		Audio:          "DTS-HD MA 5.1",
		AudioLanguages: []string{"de", "en"},
		TMDB:           1,
		IMDb:           1,
	}
}

// WriteRecord saves rec as JSON under dir and returns the file path.
func WriteRecord(t testing.TB, dir string, rec *meta.Record) string {
	t.Helper()

	path := filepath.Join(dir, "meta.json")
	if err := meta.Save(path, rec); err != nil {
		t.Fatalf("save record: %v", err)
	}
	return path
}

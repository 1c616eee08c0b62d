package torrentfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/anacrolix/torrent/bencode"
	"github.com/anacrolix/torrent/metainfo"
)

func writeTestTorrent(t *testing.T, name string) string {
	t.Helper()
	infoBytes, err := bencode.Marshal(metainfo.Info{
		Name:        name,
		PieceLength: 16384,
		Length:      4,
		Pieces:      make([]byte, 20),
	})
	if err != nil {
		t.Fatalf("marshal info: %v", err)
	}
	path := filepath.Join(t.TempDir(), "[RHD].torrent")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	mi := metainfo.MetaInfo{InfoBytes: infoBytes, Announce: "https://tracker.example/announce/abc"}
	if err := mi.Write(f); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestInfoName(t *testing.T) {
	path := writeTestTorrent(t, "Movie.2024.2160p.BluRay.REMUX-GRP")
	name, err := InfoName(path)
	if err != nil {
		t.Fatalf("InfoName: %v", err)
	}
	if name != "Movie.2024.2160p.BluRay.REMUX-GRP" {
		t.Fatalf("name = %q", name)
	}
}

func TestSetCommentKeepsInfoHash(t *testing.T) {
	path := writeTestTorrent(t, "Movie")
	before, err := InfoHash(path)
	if err != nil {
		t.Fatalf("InfoHash: %v", err)
	}
	if err := SetComment(path, "https://tracker.example/torrents/42"); err != nil {
		t.Fatalf("SetComment: %v", err)
	}
	mi, err := metainfo.LoadFromFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if mi.Comment != "https://tracker.example/torrents/42" {
		t.Fatalf("comment = %q", mi.Comment)
	}
	if mi.Announce != "https://tracker.example/announce/abc" {
		t.Fatalf("announce lost: %q", mi.Announce)
	}
	after, err := InfoHash(path)
	if err != nil {
		t.Fatalf("InfoHash: %v", err)
	}
	if before != after {
		t.Fatalf("info hash changed: %s -> %s", before, after)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestSetCommentMissingFile(t *testing.T) {
	if err := SetComment(filepath.Join(t.TempDir(), "missing.torrent"), "x"); err == nil {
		t.Fatal("expected error for missing torrent")
	}
}

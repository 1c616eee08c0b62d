// Package torrentfile reads and edits prepared .torrent files.
package torrentfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anacrolix/torrent/metainfo"
)

// InfoName returns the name stored in the torrent's info dictionary.
func InfoName(path string) (string, error) {
	mi, err := metainfo.LoadFromFile(path)
	if err != nil {
		return "", fmt.Errorf("load torrent %s: %w", path, err)
	}
	info, err := mi.UnmarshalInfo()
	if err != nil {
		return "", fmt.Errorf("decode info %s: %w", path, err)
	}
	return info.Name, nil
}

// InfoHash returns the hex info hash of the torrent.
func InfoHash(path string) (string, error) {
	mi, err := metainfo.LoadFromFile(path)
	if err != nil {
		return "", fmt.Errorf("load torrent %s: %w", path, err)
	}
	return mi.HashInfoBytes().HexString(), nil
}

// SetComment replaces the torrent comment, typically with the tracker's
// torrent page. The info dictionary is written back byte for byte so the info
// hash does not change. The file is replaced atomically.
func SetComment(path, comment string) error {
	mi, err := metainfo.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load torrent %s: %w", path, err)
	}
	mi.Comment = comment

	tmp, err := os.CreateTemp(filepath.Dir(path), ".torrent-*")
	if err != nil {
		return fmt.Errorf("create temp torrent: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := mi.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write torrent: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close torrent: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace torrent %s: %w", path, err)
	}
	return nil
}

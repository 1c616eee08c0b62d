package mkbrr

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// maxMemberSize bounds the extracted binary.
const maxMemberSize = 100 << 20

var errBinaryMissing = errors.New("archive does not contain the mkbrr binary")

// safeMember reports whether an archive entry name is a relative path that
// stays inside the extraction root.
func safeMember(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) || filepath.IsAbs(name) {
		return false
	}
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}

func isBinaryMember(name, binary string) bool {
	return path.Base(strings.ReplaceAll(name, `\`, "/")) == binary
}

func extractTarGz(archivePath, binary, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return errBinaryMissing
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			continue
		}
		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !safeMember(hdr.Name) || hdr.Size > maxMemberSize {
			continue
		}
		if !isBinaryMember(hdr.Name, binary) {
			continue
		}
		return writeMember(tr, dest)
	}
}

func extractZip(archivePath, binary, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && zr != nil) {
		return fmt.Errorf("zip: %w", err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		mode := file.Mode()
		if !mode.IsRegular() || !safeMember(file.Name) || file.UncompressedSize64 > maxMemberSize {
			continue
		}
		if !isBinaryMember(file.Name, binary) {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("zip member %s: %w", file.Name, err)
		}
		err = writeMember(rc, dest)
		rc.Close()
		return err
	}
	return errBinaryMissing
}

// writeMember copies at most maxMemberSize bytes to dest through a temp file.
func writeMember(r io.Reader, dest string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".mkbrr-*")
	if err != nil {
		return err
	}
	n, copyErr := io.Copy(tmp, io.LimitReader(r, maxMemberSize+1))
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if n > maxMemberSize {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("binary exceeds %d bytes", maxMemberSize)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

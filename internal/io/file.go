package ioutils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically, creating it if necessary.
//
// The data is written to a temporary file in the same directory, which is
// then renamed over path, so readers never see a partially written file.
// The file is created with mode 0644.
//
// Parameters:
//   - ctx: Checked before writing; a cancelled context writes nothing
//   - path: File path to write to
//   - data: Bytes to write
//
// Example:
//
//	playlistContent := []byte("#EXTM3U\n...")
//	err := WriteFile(ctx, "/music/Album/Album.m3u", playlistContent)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Checksum returns the hex SHA-256 digest of the file at path.
//
// Example:
//
//	before, _ := Checksum(path)
//	// ... test run ...
//	after, _ := Checksum(path)
//	// before == after
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

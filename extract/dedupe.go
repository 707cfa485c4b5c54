package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// RemoveDuplicateImages deletes files in dir whose content hash matches
// an earlier file, keeping the first occurrence. Factsheets repeat the
// same logo and riskometer graphic on every page; pruning them keeps the
// images directory to the distinct artwork. Returns the number removed.
func RemoveDuplicateImages(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	seen := make(map[string]string)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		hash, err := fileHash(path)
		if err != nil {
			slog.Warn("extract: could not hash image", "file", path, "error", err)
			continue
		}
		if _, dup := seen[hash]; dup {
			if err := os.Remove(path); err != nil {
				slog.Warn("extract: could not remove duplicate image", "file", path, "error", err)
				continue
			}
			removed++
		} else {
			seen[hash] = path
		}
	}
	return removed, nil
}

// fileHash computes the SHA-256 hash of a file's content.
func fileHash(path string) (string, error) {
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

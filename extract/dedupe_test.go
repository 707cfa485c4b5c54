package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRemoveDuplicateImages(t *testing.T) {
	dir := t.TempDir()

	logo := []byte("logo-bytes")
	first := writeFile(t, dir, "page_1_img_1.png", logo)
	writeFile(t, dir, "page_2_img_1.png", logo)
	writeFile(t, dir, "page_3_img_1.png", logo)
	chart := writeFile(t, dir, "page_2_img_2.png", []byte("chart-bytes"))

	removed, err := RemoveDuplicateImages(dir)
	if err != nil {
		t.Fatalf("RemoveDuplicateImages: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	// Lexicographically first copy survives, distinct files untouched.
	for _, path := range []string{first, chart} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("kept file missing: %s", path)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("dir has %d files after dedupe, want 2", len(entries))
	}
}

func TestRemoveDuplicateImagesNoDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", []byte("one"))
	writeFile(t, dir, "b.png", []byte("two"))

	removed, err := RemoveDuplicateImages(dir)
	if err != nil {
		t.Fatalf("RemoveDuplicateImages: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestRemoveDuplicateImagesMissingDir(t *testing.T) {
	removed, err := RemoveDuplicateImages(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error, got %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

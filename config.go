package fundsheet

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the fundsheet engine.
type Config struct {
	// DBPath is the full path to the SQLite database file.
	// If empty, defaults to ~/.fundsheet/<DBName>.db
	DBPath string `json:"db_path" yaml:"db_path"`

	// DBName is the name for the database (used when DBPath is empty).
	// Defaults to "fundsheet".
	DBName string `json:"db_name" yaml:"db_name"`

	// StorageDir controls where the database is created when DBPath is
	// not explicitly set. Options: "home" (default) uses ~/.fundsheet/,
	// "local" uses the current working directory.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// ImagesDir is where embedded page images are written during
	// extraction. Empty disables image extraction.
	ImagesDir string `json:"images_dir" yaml:"images_dir"`

	// DedupeImages removes byte-identical extracted images after a parse,
	// keeping one copy of repeated logos and riskometer graphics.
	DedupeImages bool `json:"dedupe_images" yaml:"dedupe_images"`

	// OCR opt-in: recognize text in extracted images and attach it to
	// chart blocks. Needs a binary built with the "ocr" tag.
	OCR bool `json:"ocr" yaml:"ocr"`

	// OCRLanguage is the tesseract language code ("eng" when empty).
	OCRLanguage string `json:"ocr_language" yaml:"ocr_language"`

	// EmitOrphanText keeps page text that appears before the first
	// detected heading, emitted under an empty section. Off by default
	// for parity with the legacy pipeline, which discarded it.
	EmitOrphanText bool `json:"emit_orphan_text" yaml:"emit_orphan_text"`
}

// DefaultConfig returns a Config with sensible defaults. The database is
// stored in ~/.fundsheet/fundsheet.db and images go to ./images.
func DefaultConfig() Config {
	return Config{
		DBName:       "fundsheet",
		StorageDir:   "home",
		ImagesDir:    "images",
		DedupeImages: true,
	}
}

// LoadConfig reads a YAML config file and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// resolveDBPath computes the final database path from config fields.
func (c *Config) resolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}

	name := c.DBName
	if name == "" {
		name = "fundsheet"
	}

	switch c.StorageDir {
	case "local", "cwd":
		return name + ".db"
	default: // "home" or empty
		home, err := os.UserHomeDir()
		if err != nil {
			return name + ".db" // fallback to cwd
		}
		return filepath.Join(home, ".fundsheet", name+".db")
	}
}

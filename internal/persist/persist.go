// Package persist reads and writes the single AppData JSON document that is
// the entire durable state.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robby/cockpit/internal/domain"
)

// DefaultFileName is the document's well-known name inside the data dir.
const DefaultFileName = "projects.json"

// DefaultPath returns the default location of the data document,
// ~/.local/share/cockpit/projects.json (or the platform equivalent reported
// by os.UserHomeDir).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, ".local", "share", "cockpit", DefaultFileName)
}

// Load reads and normalizes the document at path. Startup never fails on
// bad state: a missing file seeds the sample dataset, and an unparsable or
// version-gated document falls back to the sample dataset as well.
func Load(path string) domain.AppData {
	text, err := os.ReadFile(path)
	if err != nil {
		return domain.SampleData()
	}
	data, err := domain.ParseAppData(text)
	if err != nil {
		return domain.SampleData()
	}
	return data
}

// LoadStrict reads the document at path without the sample fallback, for
// callers that must surface failures instead of silently reseeding.
func LoadStrict(path string) (domain.AppData, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return domain.AppData{}, fmt.Errorf("read %s: %w", path, err)
	}
	return domain.ParseAppData(text)
}

// Save writes the document to path as pretty-printed JSON, creating parent
// directories as needed. The write goes to a temp file in the same
// directory followed by a rename, so readers never observe a torn
// document.
func Save(path string, data domain.AppData) error {
	encoded, err := domain.MarshalAppData(data)
	if err != nil {
		return fmt.Errorf("encode app data: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, DefaultFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(append(encoded, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a document is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

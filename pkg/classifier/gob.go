// CLAUDE:SUMMARY Gob serialization of trained models for fast loading by the serving registry.
package classifier

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// ModelExt is the extension of a model snapshot file.
const ModelExt = ".gob"

// ModelPath returns the snapshot path of locale inside dir.
func ModelPath(dir, locale string) string {
	return filepath.Join(dir, locale+ModelExt)
}

// SaveGob serializes m to a gob-encoded file at path. The file is written
// under a temporary name and renamed, so readers never see a partial model.
func SaveGob(m *Model, path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode gob: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close gob file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename gob file: %w", err)
	}
	return nil
}

// LoadGob deserializes a model written by SaveGob.
func LoadGob(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return &m, nil
}

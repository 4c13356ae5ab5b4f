// CLAUDE:SUMMARY JSON snapshot of a prepared corpus, written for external trainers and read back for inspection.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveJSON writes c as indented JSON to path.
func SaveJSON(c *Corpus, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	return nil
}

// LoadJSON reads a corpus written by SaveJSON.
func LoadJSON(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	var c Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode corpus %s: %w", path, err)
	}
	return &c, nil
}

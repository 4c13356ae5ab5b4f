package corpus

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSaveJSONLoadJSON(t *testing.T) {
	c := Clean(sampleCorpus())
	path := filepath.Join(t.TempDir(), "en-US.json")

	if err := SaveJSON(c, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if diff := cmp.Diff(c, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("corpus changed through JSON (-want +got):\n%s", diff)
	}
}

func TestLoadJSON_FileNotFound(t *testing.T) {
	if _, err := LoadJSON("/nonexistent/corpus.json"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

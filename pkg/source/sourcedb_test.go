package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// fakeAdapter implements Adapter for seeding.
type fakeAdapter struct {
	id, desc, url, license string
}

func (f *fakeAdapter) ID() string          { return f.id }
func (f *fakeAdapter) Description() string { return f.desc }
func (f *fakeAdapter) DefaultURL() string  { return f.url }
func (f *fakeAdapter) License() string     { return f.license }
func (f *fakeAdapter) Fetch(context.Context, string, string) (*Manifest, error) {
	return &Manifest{Source: f.id}, nil
}

func tempSourceDB(t *testing.T) *SourceDB {
	t.Helper()
	sdb, err := OpenSourceDB(filepath.Join(t.TempDir(), "sources.db"))
	if err != nil {
		t.Fatalf("OpenSourceDB: %v", err)
	}
	t.Cleanup(func() { sdb.Close() })
	return sdb
}

func TestOpenSourceDB_CreatesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	sdb, err := OpenSourceDB(path)
	if err != nil {
		t.Fatalf("OpenSourceDB: %v", err)
	}
	defer sdb.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file not created: %v", err)
	}
	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources on empty db: %v", err)
	}
	if len(sources) != 0 {
		t.Fatalf("expected 0 sources, got %d", len(sources))
	}
}

func TestSeed_KeepsOverrides(t *testing.T) {
	sdb := tempSourceDB(t)

	if err := sdb.Seed([]Adapter{&fakeAdapter{"massive-test", "test", "https://example.com/v1.tar.gz", "CC BY 4.0"}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := sdb.SetURL("massive-test", "https://mirror.example.com/v1.tar.gz"); err != nil {
		t.Fatalf("SetURL: %v", err)
	}
	if err := sdb.Seed([]Adapter{&fakeAdapter{"massive-test", "test", "https://changed.example.com", "CC BY 4.0"}}); err != nil {
		t.Fatalf("Seed again: %v", err)
	}

	url, err := sdb.GetURL("massive-test")
	if err != nil {
		t.Fatalf("GetURL: %v", err)
	}
	if url != "https://mirror.example.com/v1.tar.gz" {
		t.Fatalf("re-seed should keep the override, got %s", url)
	}
}

func TestSeed_RegisteredAdapters(t *testing.T) {
	sdb := tempSourceDB(t)
	if err := sdb.Seed(All()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	url, err := sdb.GetURL("massive-1.1")
	if err != nil {
		t.Fatalf("GetURL: %v", err)
	}
	if url != "https://amazon-massive-nlu-dataset.s3.amazonaws.com/amazon-massive-dataset-1.1.tar.gz" {
		t.Errorf("massive-1.1 url = %s", url)
	}
}

func TestSetURL_NotFound(t *testing.T) {
	sdb := tempSourceDB(t)
	if err := sdb.SetURL("nonexistent", "https://example.com"); err == nil {
		t.Fatal("expected error for nonexistent adapter")
	}
}

func TestUpdateCheck(t *testing.T) {
	sdb := tempSourceDB(t)
	if err := sdb.Seed([]Adapter{&fakeAdapter{"a1", "desc1", "https://example.com/a1", "CC0"}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	if err := sdb.UpdateCheck("a1", 200, ""); err != nil {
		t.Fatalf("UpdateCheck: %v", err)
	}
	sources, err := sdb.ListSources()
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	src := sources[0]
	if src.LastStatus == nil || *src.LastStatus != 200 {
		t.Fatalf("expected last_status=200, got %v", src.LastStatus)
	}
	if src.LastCheck == nil || *src.LastCheck == 0 {
		t.Fatal("expected last_check to be set")
	}
	if src.LastError != nil {
		t.Fatalf("expected nil last_error, got %v", *src.LastError)
	}

	if err := sdb.UpdateCheck("a1", 404, "not found"); err != nil {
		t.Fatalf("UpdateCheck with error: %v", err)
	}
	sources, _ = sdb.ListSources()
	src = sources[0]
	if src.LastStatus == nil || *src.LastStatus != 404 {
		t.Fatalf("expected last_status=404, got %v", src.LastStatus)
	}
	if src.LastError == nil || *src.LastError != "not found" {
		t.Fatalf("expected last_error='not found', got %v", src.LastError)
	}
}

func TestRecordFetch(t *testing.T) {
	sdb := tempSourceDB(t)
	sdb.Seed([]Adapter{&fakeAdapter{"a1", "desc1", "https://example.com/a1", "CC0"}})

	sources, _ := sdb.ListSources()
	if sources[0].LastFetch != nil || sources[0].Locales != 0 {
		t.Fatalf("fresh source = %+v, want no fetch recorded", sources[0])
	}

	if err := sdb.RecordFetch("a1", 51); err != nil {
		t.Fatalf("RecordFetch: %v", err)
	}
	sources, _ = sdb.ListSources()
	if sources[0].LastFetch == nil || sources[0].Locales != 51 {
		t.Errorf("after fetch = %+v, want 51 locales and a fetch time", sources[0])
	}

	if err := sdb.RecordFetch("missing", 1); err == nil {
		t.Error("expected error for unknown source")
	}
}

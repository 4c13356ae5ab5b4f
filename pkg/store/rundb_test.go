package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/massive-bench/pkg/eval"
	"github.com/hazyhaar/massive-bench/pkg/pipeline"
)

func tempRunDB(t *testing.T) *RunDB {
	t.Helper()
	rdb, err := OpenRunDB(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("OpenRunDB: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestOpenRunDB_CreatesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	rdb, err := OpenRunDB(path)
	if err != nil {
		t.Fatalf("OpenRunDB: %v", err)
	}
	defer rdb.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file not created: %v", err)
	}
	runs, err := rdb.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns on empty db: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected 0 runs, got %d", len(runs))
	}
}

func TestRecord_Statuses(t *testing.T) {
	rdb := tempRunDB(t)
	cfg := pipeline.Config{NoneIntent: "general_quirky", UseAnnotations: true}
	runID := NewRunID()

	outcomes := []pipeline.Outcome{
		{Locale: "en-US", Result: eval.NewResult("en-US", 3, 4)},
		{Locale: "fr-FR", Result: eval.NewResult("fr-FR", 0, 0)},
		{Locale: "de-DE", Err: errors.New("locale de-DE: load: boom")},
	}
	for _, out := range outcomes {
		if err := rdb.Record(runID, cfg, out); err != nil {
			t.Fatalf("Record %s: %v", out.Locale, err)
		}
	}

	runs, err := rdb.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	byLocale := make(map[string]Run)
	for _, r := range runs {
		byLocale[r.Locale] = r
	}

	en := byLocale["en-US"]
	if en.Status != StatusOK || en.Good != 3 || en.Total != 4 || en.Accuracy != 0.75 {
		t.Errorf("en-US = %+v", en)
	}
	if en.RunID != runID || en.NoneIntent != "general_quirky" || !en.UseAnnotations {
		t.Errorf("en-US run metadata = %+v", en)
	}
	if en.Error != nil {
		t.Errorf("en-US error = %v, want nil", *en.Error)
	}
	if byLocale["fr-FR"].Status != StatusNoData {
		t.Errorf("fr-FR status = %q, want %q", byLocale["fr-FR"].Status, StatusNoData)
	}
	de := byLocale["de-DE"]
	if de.Status != StatusError || de.Error == nil || *de.Error != "locale de-DE: load: boom" {
		t.Errorf("de-DE = %+v", de)
	}
}

func TestRecord_ReplacesSameLocale(t *testing.T) {
	rdb := tempRunDB(t)
	runID := NewRunID()

	rdb.Record(runID, pipeline.Config{}, pipeline.Outcome{Locale: "en-US", Result: eval.NewResult("en-US", 1, 4)})
	rdb.Record(runID, pipeline.Config{}, pipeline.Outcome{Locale: "en-US", Result: eval.NewResult("en-US", 2, 4)})

	runs, err := rdb.LocaleHistory("en-US")
	if err != nil {
		t.Fatalf("LocaleHistory: %v", err)
	}
	if len(runs) != 1 || runs[0].Good != 2 {
		t.Errorf("history = %+v, want one row with good=2", runs)
	}
}

func TestLocaleHistory(t *testing.T) {
	rdb := tempRunDB(t)
	first, second := NewRunID(), NewRunID()
	if first == second {
		t.Fatal("run ids should be unique")
	}

	rdb.Record(first, pipeline.Config{}, pipeline.Outcome{Locale: "en-US", Result: eval.NewResult("en-US", 1, 2)})
	rdb.Record(first, pipeline.Config{}, pipeline.Outcome{Locale: "ja-JP", Result: eval.NewResult("ja-JP", 1, 2)})
	rdb.Record(second, pipeline.Config{}, pipeline.Outcome{Locale: "en-US", Result: eval.NewResult("en-US", 2, 2)})

	runs, err := rdb.LocaleHistory("en-US")
	if err != nil {
		t.Fatalf("LocaleHistory: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 en-US runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Locale != "en-US" {
			t.Errorf("unexpected locale %q in history", r.Locale)
		}
	}

	none, err := rdb.LocaleHistory("xx-XX")
	if err != nil {
		t.Fatalf("LocaleHistory: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected empty history, got %d", len(none))
	}
}

func TestListRuns_Limit(t *testing.T) {
	rdb := tempRunDB(t)
	runID := NewRunID()
	for _, loc := range []string{"a-A", "b-B", "c-C"} {
		if err := rdb.Record(runID, pipeline.Config{}, pipeline.Outcome{Locale: loc}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	runs, err := rdb.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(runs))
	}
}

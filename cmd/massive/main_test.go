package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/massive-bench/pkg/classifier"
	"github.com/hazyhaar/massive-bench/pkg/store"
	"github.com/hazyhaar/massive-bench/pkg/textnorm"
)

func TestLoadConfig_Defaults(t *testing.T) {
	got, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	want := defaultConfig()
	if got.DataDir != want.DataDir || got.NoneIntent != "general_quirky" || !got.UseAnnotations || got.Addr != ":8420" {
		t.Errorf("defaults = %+v", got)
	}
	if got.Classifier != classifier.DefaultSettings() {
		t.Errorf("classifier = %+v, want defaults", got.Classifier)
	}
}

func TestLoadConfig_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "massive.yaml")
	os.WriteFile(path, []byte(`
data_dir: /srv/massive
locales: [en-US, fr-FR]
use_annotations: false
classifier:
  alpha: 1.0
processor:
  normalizer: fold
`), 0o644)

	got, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got.DataDir != "/srv/massive" || len(got.Locales) != 2 || got.UseAnnotations {
		t.Errorf("pipeline config = %+v", got.Config)
	}
	if got.Classifier.Alpha != 1.0 || got.Classifier.MaxResults != 10 {
		t.Errorf("classifier = %+v, want alpha overlaid on defaults", got.Classifier)
	}
	if got.Processor.Normalizer != textnorm.CaseFold {
		t.Errorf("normalizer = %q, want %q from file", got.Processor.Normalizer, textnorm.CaseFold)
	}
	if got.NoneIntent != "general_quirky" {
		t.Errorf("none_intent = %q, want default kept", got.NoneIntent)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("data_dir: [unterminated"), 0o644)
	if _, err := loadConfig(bad); err == nil {
		t.Error("expected parse error")
	}

	badScore := filepath.Join(dir, "score.yaml")
	os.WriteFile(badScore, []byte("classifier:\n  min_score: 0.9\n"), 0o644)
	if _, err := loadConfig(badScore); err == nil {
		t.Error("expected validation error for min_score above 0.5")
	}

	badMode := filepath.Join(dir, "mode.yaml")
	os.WriteFile(badMode, []byte("processor:\n  normalizer: shout\n"), 0o644)
	if _, err := loadConfig(badMode); err == nil {
		t.Error("expected validation error for unknown normalizer")
	}
}

func record(intent, partition, utt, annot string) string {
	return `{"intent":"` + intent + `","scenario":"s","partition":"` + partition +
		`","utt":"` + utt + `","annot_utt":"` + annot + `"}`
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("massive %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestBenchAndRuns(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	os.MkdirAll(dataDir, 0o755)
	lines := []string{
		record("alarm_set", "train", "wake me up at nine", "wake me up at [time : nine]"),
		record("alarm_set", "train", "set an alarm for seven", "set an alarm for [time : seven]"),
		record("alarm_set", "test", "wake me up at seven", "wake me up at [time : seven]"),
		record("play_music", "train", "play some jazz music", "play some [music_genre : jazz] music"),
		record("play_music", "train", "put on my music playlist", "put on my music playlist"),
		record("play_music", "test", "play jazz music", "play [music_genre : jazz] music"),
	}
	os.WriteFile(filepath.Join(dataDir, "en-US.jsonl"), []byte(strings.Join(lines, "\n")), 0o644)

	cfgPath := filepath.Join(dir, "massive.yaml")
	os.WriteFile(cfgPath, []byte(
		"data_dir: "+dataDir+"\n"+
			"models_dir: "+filepath.Join(dir, "models")+"\n"+
			"runs_db: "+filepath.Join(dir, "runs.db")+"\n"+
			"log_level: error\n"), 0o644)

	out := execute(t, "--config", cfgPath, "bench", "--format", "markdown")
	if !strings.Contains(out, "en-US - Good 2 of 2 Accuracy: 100.0") {
		t.Errorf("bench output missing locale line:\n%s", out)
	}
	if !strings.Contains(strings.ToLower(out), "| locale") {
		t.Errorf("bench output missing summary table:\n%s", out)
	}

	if _, err := os.Stat(classifier.ModelPath(filepath.Join(dir, "models"), "en-US")); err != nil {
		t.Errorf("model not saved: %v", err)
	}

	rdb, err := store.OpenRunDB(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("OpenRunDB: %v", err)
	}
	runs, err := rdb.LocaleHistory("en-US")
	rdb.Close()
	if err != nil || len(runs) != 1 || runs[0].Good != 2 {
		t.Fatalf("recorded runs = %+v, %v", runs, err)
	}

	out = execute(t, "--config", cfgPath, "runs", "--locale", "en-US")
	if !strings.Contains(out, "100.0%") {
		t.Errorf("runs output missing accuracy:\n%s", out)
	}
}

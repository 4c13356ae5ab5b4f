package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeLocale writes lines as <dir>/<locale>.jsonl and returns dir.
func writeLocale(t *testing.T, locale string, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	content := strings.Join(lines, "\n")
	if err := os.WriteFile(filepath.Join(dir, locale+FileExt), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return dir
}

func record(intent, scenario, partition, utt string) string {
	annot := "[" + utt + "]"
	return `{"id":"1","locale":"en-US","intent":"` + intent + `","scenario":"` + scenario +
		`","partition":"` + partition + `","utt":"` + utt + `","annot_utt":"` + annot + `"}`
}

func TestLoadLocale_Grouping(t *testing.T) {
	dir := writeLocale(t, "en-US",
		record("A", "alarm", "train", "wake me up"),
		record("A", "alarm", "train", "set an alarm"),
		record("A", "alarm", "test", "alarm please"),
		record("B", "music", "train", "play jazz"),
		record("C", "weather", "dev", "is it raining"),
		record("B", "music", "dev", "play rock"),
	)

	c, err := LoadLocale(dir, "en-US")
	if err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}

	if c.Name != "Corpus en-US" || c.Locale != "en-US" {
		t.Errorf("name/locale = %q/%q", c.Name, c.Locale)
	}
	want := Stats{Intents: 2, Utterances: 3, Tests: 1}
	if c.Stats != want {
		t.Errorf("Stats = %+v, want %+v", c.Stats, want)
	}
	if diff := cmp.Diff([]string{"A", "B"}, intentNames(c)); diff != "" {
		t.Errorf("intents mismatch (-want +got):\n%s", diff)
	}

	a := c.Data[0]
	if diff := cmp.Diff([]string{"wake me up", "set an alarm"}, a.Utterances); diff != "" {
		t.Errorf("A utterances (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"[wake me up]", "[set an alarm]"}, a.AnnotUtterances); diff != "" {
		t.Errorf("A annotated utterances (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"alarm please"}, a.Tests); diff != "" {
		t.Errorf("A tests (-want +got):\n%s", diff)
	}

	b := c.Data[1]
	if len(b.Tests) != 0 || len(b.AnnotTests) != 0 {
		t.Errorf("B tests = %v, want none (dev record ignored)", b.Tests)
	}
}

func TestLoadLocale_ScenarioFromFirstRecord(t *testing.T) {
	dir := writeLocale(t, "fr-FR",
		record("A", "first", "dev", "ignored"),
		record("A", "second", "test", "kept"),
		record("A", "third", "train", "also kept"),
	)

	c, err := LoadLocale(dir, "fr-FR")
	if err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}
	if got := c.Data[0].Scenario; got != "second" {
		t.Errorf("Scenario = %q, want second", got)
	}
}

func TestLoadLocale_DevOnlyIntentHasNoGroup(t *testing.T) {
	dir := writeLocale(t, "de-DE",
		record("A", "alarm", "dev", "weck mich"),
		record("B", "music", "train", "spiel musik bitte"),
	)

	c, err := LoadLocale(dir, "de-DE")
	if err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}
	if c.Stats.Intents != 1 || len(c.Data) != 1 || c.Data[0].Intent != "B" {
		t.Errorf("expected only intent B, got %v", intentNames(c))
	}
}

func TestLoadLocale_MissingFile(t *testing.T) {
	_, err := LoadLocale(t.TempDir(), "xx-XX")
	if !errors.Is(err, ErrMissingSource) {
		t.Fatalf("err = %v, want ErrMissingSource", err)
	}
}

func TestLoad_MalformedLine(t *testing.T) {
	input := record("A", "alarm", "train", "wake me up") + "\n{not json\n" + record("B", "music", "test", "play")
	c, err := Load(strings.NewReader(input), "en-US")
	if c != nil {
		t.Error("expected no corpus on malformed input")
	}
	var mre *MalformedRecordError
	if !errors.As(err, &mre) {
		t.Fatalf("err = %v, want *MalformedRecordError", err)
	}
	if mre.Line != 2 || mre.Locale != "en-US" {
		t.Errorf("Line/Locale = %d/%q, want 2/en-US", mre.Line, mre.Locale)
	}
}

func TestLoad_BlankLinesSkipped(t *testing.T) {
	input := "\n" + record("A", "alarm", "train", "wake me up") + "\r\n\n   \n"
	c, err := Load(strings.NewReader(input), "en-US")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Stats.Utterances != 1 {
		t.Errorf("Utterances = %d, want 1", c.Stats.Utterances)
	}
}

func TestLoad_StatsMatchGroups(t *testing.T) {
	input := strings.Join([]string{
		record("A", "s", "train", "one two three"),
		record("B", "s", "test", "four five six"),
		record("A", "s", "test", "seven eight nine"),
		record("C", "s", "train", "ten eleven twelve"),
	}, "\n")
	c, err := Load(strings.NewReader(input), "en-US")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := countStats(c.Data); got != c.Stats {
		t.Errorf("Stats = %+v, recount = %+v", c.Stats, got)
	}
}

func TestListLocales(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"fr-FR.jsonl", "en-US.jsonl", "notes.txt"} {
		os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644)
	}
	os.MkdirAll(filepath.Join(dir, "de-DE.jsonl"), 0o755)

	got, err := ListLocales(dir)
	if err != nil {
		t.Fatalf("ListLocales: %v", err)
	}
	if diff := cmp.Diff([]string{"en-US", "fr-FR"}, got); diff != "" {
		t.Errorf("locales mismatch (-want +got):\n%s", diff)
	}
}

func TestUseAnnotated(t *testing.T) {
	dir := writeLocale(t, "en-US",
		record("A", "alarm", "train", "wake me up"),
		record("A", "alarm", "test", "alarm please"),
	)
	c, err := LoadLocale(dir, "en-US")
	if err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}

	annotated := UseAnnotated(c)
	if diff := cmp.Diff([]string{"[wake me up]"}, annotated.Data[0].Utterances); diff != "" {
		t.Errorf("utterances (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"[alarm please]"}, annotated.Data[0].Tests); diff != "" {
		t.Errorf("tests (-want +got):\n%s", diff)
	}
	if c.Data[0].Utterances[0] != "wake me up" {
		t.Error("UseAnnotated modified its input")
	}
}

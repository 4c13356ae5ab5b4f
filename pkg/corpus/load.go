// CLAUDE:SUMMARY Per-locale JSONL loader: partitions records into train/test, groups by intent, counts stats; lists locale files in a data dir.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExt is the extension of a locale file inside a data directory.
const FileExt = ".jsonl"

const maxLineSize = 1 << 20

// SourcePath returns the file holding the records of locale.
func SourcePath(dir, locale string) string {
	return filepath.Join(dir, locale+FileExt)
}

// LoadLocale reads <dir>/<locale>.jsonl into a new corpus.
func LoadLocale(dir, locale string) (*Corpus, error) {
	path := SourcePath(dir, locale)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %s: %w", path, ErrMissingSource)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Load(f, locale)
}

// Load builds the corpus of locale from newline-delimited JSON records.
// Blank lines are skipped; any other undecodable line fails the whole load.
func Load(r io.Reader, locale string) (*Corpus, error) {
	c := New(locale)
	byIntent := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, &MalformedRecordError{Locale: locale, Line: line, Err: err}
		}
		c.add(rec, byIntent)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read locale %s: %w", locale, err)
	}
	return c, nil
}

// add files rec under its intent group. byIntent maps intent name to its
// index in c.Data.
func (c *Corpus) add(rec Record, byIntent map[string]int) {
	if rec.Partition != PartitionTrain && rec.Partition != PartitionTest {
		return
	}

	idx, ok := byIntent[rec.Intent]
	if !ok {
		c.Data = append(c.Data, IntentGroup{
			Intent:          rec.Intent,
			Scenario:        rec.Scenario,
			Utterances:      []string{},
			AnnotUtterances: []string{},
			Tests:           []string{},
			AnnotTests:      []string{},
		})
		idx = len(c.Data) - 1
		byIntent[rec.Intent] = idx
		c.Stats.Intents++
	}

	g := &c.Data[idx]
	if rec.Partition == PartitionTrain {
		g.Utterances = append(g.Utterances, rec.Utt)
		g.AnnotUtterances = append(g.AnnotUtterances, rec.AnnotUtt)
		c.Stats.Utterances++
		return
	}
	g.Tests = append(g.Tests, rec.Utt)
	g.AnnotTests = append(g.AnnotTests, rec.AnnotUtt)
	c.Stats.Tests++
}

// ListLocales returns the locales that have a file in dir, sorted.
func ListLocales(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir %s: %w", dir, err)
	}

	var locales []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileExt) {
			continue
		}
		locales = append(locales, strings.TrimSuffix(entry.Name(), FileExt))
	}
	sort.Strings(locales)
	return locales, nil
}

// CLAUDE:SUMMARY Corpus data model: raw Record, per-intent IntentGroup with index-aligned plain/annotated sequences, per-locale Corpus with stats.
package corpus

import "fmt"

// Partition values that the loader keeps. Anything else (dev, ...) is ignored.
const (
	PartitionTrain = "train"
	PartitionTest  = "test"
)

// Record is one labeled line of a locale file.
type Record struct {
	Intent    string `json:"intent"`
	Scenario  string `json:"scenario"`
	Partition string `json:"partition"`
	Utt       string `json:"utt"`
	AnnotUtt  string `json:"annot_utt"`
}

// IntentGroup holds every train and test utterance of one intent.
// Utterances/AnnotUtterances and Tests/AnnotTests are index-aligned.
type IntentGroup struct {
	Intent          string   `json:"intent"`
	Scenario        string   `json:"scenario"`
	Utterances      []string `json:"utterances"`
	AnnotUtterances []string `json:"annotUtterances,omitempty"`
	Tests           []string `json:"tests"`
	AnnotTests      []string `json:"annotTests,omitempty"`
}

// Stats are the summary counters of a corpus.
type Stats struct {
	Intents    int `json:"intents"`
	Utterances int `json:"utterances"`
	Tests      int `json:"tests"`
}

// Corpus is the prepared dataset of one locale.
type Corpus struct {
	Name   string        `json:"name"`
	Locale string        `json:"locale"`
	Stats  Stats         `json:"stats"`
	Data   []IntentGroup `json:"data"`
}

// New returns an empty corpus for locale.
func New(locale string) *Corpus {
	return &Corpus{
		Name:   fmt.Sprintf("Corpus %s", locale),
		Locale: locale,
		Data:   []IntentGroup{},
	}
}

// Clone returns a deep copy of c.
func (c *Corpus) Clone() *Corpus {
	out := &Corpus{
		Name:   c.Name,
		Locale: c.Locale,
		Stats:  c.Stats,
		Data:   make([]IntentGroup, len(c.Data)),
	}
	for i, g := range c.Data {
		out.Data[i] = g.clone()
	}
	return out
}

func (g IntentGroup) clone() IntentGroup {
	g.Utterances = cloneStrings(g.Utterances)
	g.AnnotUtterances = cloneStrings(g.AnnotUtterances)
	g.Tests = cloneStrings(g.Tests)
	g.AnnotTests = cloneStrings(g.AnnotTests)
	return g
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// countStats recomputes the counters from the groups.
func countStats(data []IntentGroup) Stats {
	s := Stats{Intents: len(data)}
	for _, g := range data {
		s.Utterances += len(g.Utterances)
		s.Tests += len(g.Tests)
	}
	return s
}

// UseAnnotated returns a copy of c where the plain train and test sequences
// are replaced by their annotated counterparts.
func UseAnnotated(c *Corpus) *Corpus {
	out := c.Clone()
	for i := range out.Data {
		g := &out.Data[i]
		g.Utterances = cloneStrings(g.AnnotUtterances)
		g.Tests = cloneStrings(g.AnnotTests)
	}
	out.Stats = countStats(out.Data)
	return out
}

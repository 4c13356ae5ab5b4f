// CLAUDE:SUMMARY Multinomial naive-Bayes intent ranker trained on a prepared corpus; ranks "None" first for unknown or low-confidence input.
package classifier

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hazyhaar/massive-bench/pkg/corpus"
)

// NoneIntent is the sentinel ranked first when the model has no confident answer.
const NoneIntent = "None"

// Classification is one ranked intent with its posterior score.
type Classification struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

// Model is a bag-of-features naive-Bayes classifier. Fields are exported for
// gob snapshots.
type Model struct {
	Locale      string
	Settings    Settings
	Intents     []string
	Docs        []int
	TokenCounts []map[string]int
	TokenTotals []int
	Vocabulary  map[string]int
	TotalDocs   int
}

// New returns an untrained model.
func New(s Settings) *Model {
	return &Model{Settings: s}
}

// Train replaces the model state with the statistics of c's training
// utterances. Features are the space-separated tokens of each utterance.
// Intents without training utterances are left out.
func (m *Model) Train(ctx context.Context, c *corpus.Corpus) error {
	if err := m.Settings.Validate(); err != nil {
		return fmt.Errorf("train %s: %w", c.Locale, err)
	}

	m.Locale = c.Locale
	m.Intents = nil
	m.Docs = nil
	m.TokenCounts = nil
	m.TokenTotals = nil
	m.Vocabulary = make(map[string]int)
	m.TotalDocs = 0

	for _, g := range c.Data {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(g.Utterances) == 0 {
			continue
		}
		counts := make(map[string]int)
		total := 0
		for _, u := range g.Utterances {
			for _, tok := range strings.Fields(u) {
				counts[tok]++
				m.Vocabulary[tok]++
				total++
			}
		}
		m.Intents = append(m.Intents, g.Intent)
		m.Docs = append(m.Docs, len(g.Utterances))
		m.TokenCounts = append(m.TokenCounts, counts)
		m.TokenTotals = append(m.TokenTotals, total)
		m.TotalDocs += len(g.Utterances)
	}
	return nil
}

// Run ranks the model's intents for text by descending posterior.
func (m *Model) Run(ctx context.Context, text string) ([]Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var known []string
	for _, tok := range strings.Fields(text) {
		if _, ok := m.Vocabulary[tok]; ok {
			known = append(known, tok)
		}
	}
	if len(known) == 0 || len(m.Intents) == 0 {
		return []Classification{{Intent: NoneIntent, Score: 1}}, nil
	}

	k := float64(len(m.Intents))
	v := float64(len(m.Vocabulary))
	alpha := m.Settings.Alpha

	logits := make([]float64, len(m.Intents))
	best := math.Inf(-1)
	for i := range m.Intents {
		score := math.Log((float64(m.Docs[i]) + 1) / (float64(m.TotalDocs) + k))
		denom := float64(m.TokenTotals[i]) + alpha*v
		for _, tok := range known {
			score += math.Log((float64(m.TokenCounts[i][tok]) + alpha) / denom)
		}
		logits[i] = score
		if score > best {
			best = score
		}
	}

	var sum float64
	for i := range logits {
		logits[i] = math.Exp(logits[i] - best)
		sum += logits[i]
	}

	ranked := make([]Classification, len(m.Intents))
	for i, intent := range m.Intents {
		ranked[i] = Classification{Intent: intent, Score: logits[i] / sum}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Intent < ranked[j].Intent
	})
	if n := m.Settings.MaxResults; n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	if top := ranked[0].Score; top < m.Settings.MinScore {
		ranked = append([]Classification{{Intent: NoneIntent, Score: 1 - top}}, ranked...)
	}
	return ranked, nil
}

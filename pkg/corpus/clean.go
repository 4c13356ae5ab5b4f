// CLAUDE:SUMMARY Cross-intent deduplication: drops training utterances whose bag of words appears under more than one intent, collapses in-intent duplicates, drops utterances of two words or fewer.
package corpus

import (
	"sort"
	"strings"
)

// MinWords is the fewest words a training utterance needs to survive
// cleaning.
const MinWords = 3

// Hash is the bag-of-words signature of an utterance: its space-separated
// words sorted and joined with "_". Word order does not change the hash.
func Hash(utterance string) string {
	words := strings.Split(utterance, " ")
	sort.Strings(words)
	return strings.Join(words, "_")
}

func wordCount(utterance string) int {
	return len(strings.Split(utterance, " "))
}

// hashBucket records, per hash, which intents produced it and the original
// utterances under each, in first-seen order.
type hashBucket struct {
	order   []string
	intents map[string]map[string][]string
}

func newHashBucket() *hashBucket {
	return &hashBucket{intents: make(map[string]map[string][]string)}
}

func (b *hashBucket) add(intent, utterance string) {
	h := Hash(utterance)
	byIntent, ok := b.intents[h]
	if !ok {
		byIntent = make(map[string][]string)
		b.intents[h] = byIntent
		b.order = append(b.order, h)
	}
	byIntent[intent] = append(byIntent[intent], utterance)
}

// Clean returns a new corpus keeping only unambiguous training utterances.
// An utterance survives when its hash belongs to a single intent, it is the
// first one of that intent with that hash, and it has at least MinWords
// words. Tests pass through untouched; annotated training utterances are not
// carried over.
func Clean(c *Corpus) *Corpus {
	out := &Corpus{
		Name:   c.Name,
		Locale: c.Locale,
		Data:   make([]IntentGroup, len(c.Data)),
	}

	byIntent := make(map[string]int, len(c.Data))
	bucket := newHashBucket()
	for i, g := range c.Data {
		out.Data[i] = IntentGroup{
			Intent:     g.Intent,
			Scenario:   g.Scenario,
			Utterances: []string{},
			Tests:      cloneStrings(g.Tests),
			AnnotTests: cloneStrings(g.AnnotTests),
		}
		byIntent[g.Intent] = i
		for _, u := range g.Utterances {
			bucket.add(g.Intent, u)
		}
	}

	for _, h := range bucket.order {
		owners := bucket.intents[h]
		if len(owners) != 1 {
			continue
		}
		for intent, utterances := range owners {
			first := utterances[0]
			if wordCount(first) < MinWords {
				continue
			}
			g := &out.Data[byIntent[intent]]
			g.Utterances = append(g.Utterances, first)
		}
	}

	out.Stats = countStats(out.Data)
	return out
}

// CLAUDE:SUMMARY Evaluation harness: ranks every test utterance, maps a top-ranked "None" to the fallback intent, counts correct answers per locale.
package eval

import (
	"context"
	"fmt"

	"github.com/hazyhaar/massive-bench/pkg/classifier"
	"github.com/hazyhaar/massive-bench/pkg/corpus"
)

// Ranker answers a ranked intent list for an utterance.
type Ranker interface {
	Run(ctx context.Context, text string) ([]classifier.Classification, error)
}

// Result is the accuracy of one locale.
type Result struct {
	Locale   string  `json:"locale"`
	Good     int     `json:"good"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
	NoData   bool    `json:"no_data,omitempty"`
}

// NewResult builds a Result from counts. A zero total yields NoData with
// accuracy 0.
func NewResult(locale string, good, total int) Result {
	r := Result{Locale: locale, Good: good, Total: total}
	if total == 0 {
		r.NoData = true
		return r
	}
	r.Accuracy = float64(good) / float64(total)
	return r
}

// Percent returns the accuracy as a percentage.
func (r Result) Percent() float64 {
	return r.Accuracy * 100
}

func (r Result) String() string {
	if r.NoData {
		return fmt.Sprintf("%s - no test data", r.Locale)
	}
	return fmt.Sprintf("%s - Good %d of %d Accuracy: %.1f", r.Locale, r.Good, r.Total, r.Percent())
}

// TopIntent returns the intent ranked first, replacing the "None" sentinel
// with fallback when fallback is set. An empty ranking yields "".
func TopIntent(ranked []classifier.Classification, fallback string) string {
	if len(ranked) == 0 {
		return ""
	}
	top := ranked[0].Intent
	if top == classifier.NoneIntent && fallback != "" {
		return fallback
	}
	return top
}

// Measure runs r on every test utterance of c and compares the top-ranked
// intent with the utterance's group.
func Measure(ctx context.Context, r Ranker, c *corpus.Corpus, fallback string) (Result, error) {
	var good, total int
	for _, g := range c.Data {
		for _, test := range g.Tests {
			ranked, err := r.Run(ctx, test)
			if err != nil {
				return Result{}, fmt.Errorf("measure %s: rank %q: %w", c.Locale, test, err)
			}
			total++
			if TopIntent(ranked, fallback) == g.Intent {
				good++
			}
		}
	}
	return NewResult(c.Locale, good, total), nil
}

// Aggregate sums results into one micro-averaged result labelled "total".
func Aggregate(results []Result) Result {
	var good, total int
	for _, r := range results {
		good += r.Good
		total += r.Total
	}
	return NewResult("total", good, total)
}

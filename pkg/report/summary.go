// CLAUDE:SUMMARY Benchmark report tables: per-locale accuracy with a micro-averaged total footer, and the run ledger history.
package report

import (
	"fmt"
	"time"

	"github.com/hazyhaar/massive-bench/pkg/eval"
	"github.com/hazyhaar/massive-bench/pkg/pipeline"
	"github.com/hazyhaar/massive-bench/pkg/store"
)

// Summary renders one row per locale outcome and a footer with the
// micro-averaged accuracy of the locales that produced a result.
func Summary(outcomes []pipeline.Outcome, m Mode) string {
	tb := NewTable(m)
	tb.Header("Locale", "Intents", "Utterances", "Tests", "Good", "Accuracy", "Status")
	tb.AlignRight(2, 3, 4, 5, 6)

	var results []eval.Result
	var intents, utterances, tests int
	for _, out := range outcomes {
		if out.Err != nil {
			tb.Row(out.Locale, "", "", "", "", "", "error")
			continue
		}
		results = append(results, out.Result)
		intents += out.Stats.Intents
		utterances += out.Stats.Utterances
		tests += out.Stats.Tests
		tb.Row(out.Locale, out.Stats.Intents, out.Stats.Utterances, out.Stats.Tests,
			out.Result.Good, accuracy(out.Result), status(out.Result))
	}

	total := eval.Aggregate(results)
	tb.Footer("Total", intents, utterances, tests, total.Good, accuracy(total),
		fmt.Sprintf("%d/%d", len(results), len(outcomes)))
	return tb.String()
}

// Runs renders rows of the run ledger.
func Runs(runs []store.Run, m Mode) string {
	tb := NewTable(m)
	tb.Header("Run", "Locale", "Good", "Total", "Accuracy", "Status", "When")
	tb.AlignRight(3, 4, 5)
	for _, r := range runs {
		acc := "-"
		if r.Status == store.StatusOK {
			acc = fmt.Sprintf("%.1f%%", r.Accuracy*100)
		}
		tb.Row(shortID(r.RunID), r.Locale, r.Good, r.Total, acc, r.Status,
			time.Unix(r.CreatedAt, 0).UTC().Format("2006-01-02 15:04"))
	}
	return tb.String()
}

func accuracy(r eval.Result) string {
	if r.NoData {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", r.Percent())
}

func status(r eval.Result) string {
	if r.NoData {
		return "no data"
	}
	return "ok"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

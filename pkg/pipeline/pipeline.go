// CLAUDE:SUMMARY Pipeline driver: per locale, load -> select text -> fold acronyms -> process -> clean -> augment -> train -> measure, strictly sequential with locale-scoped errors.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/massive-bench/pkg/corpus"
	"github.com/hazyhaar/massive-bench/pkg/eval"
	"github.com/hazyhaar/massive-bench/pkg/ngram"
	"github.com/hazyhaar/massive-bench/pkg/processor"
	"github.com/hazyhaar/massive-bench/pkg/textnorm"
)

// Config selects the locales of a run and how their text is prepared.
type Config struct {
	DataDir string `yaml:"data_dir"`
	// Locales to run; empty means every locale file in DataDir.
	Locales []string `yaml:"locales"`
	// NoneIntent replaces a top-ranked "None" during evaluation.
	NoneIntent string `yaml:"none_intent"`
	// UseAnnotations trains and tests on annot_utt instead of utt.
	UseAnnotations bool `yaml:"use_annotations"`
}

// ResolveLocales returns the configured locales, or every locale found in
// the data directory.
func (c Config) ResolveLocales() ([]string, error) {
	if len(c.Locales) > 0 {
		return c.Locales, nil
	}
	return corpus.ListLocales(c.DataDir)
}

// Trainer consumes a prepared corpus.
type Trainer interface {
	Train(ctx context.Context, c *corpus.Corpus) error
}

// Model is a classifier the driver can train and measure.
type Model interface {
	Trainer
	eval.Ranker
}

// ModelFactory returns a fresh, untrained model for locale.
type ModelFactory func(locale string) Model

// Outcome is what one locale produced. Err is set when any stage failed;
// Result and Model are then zero.
type Outcome struct {
	Locale string
	Stats  corpus.Stats
	Result eval.Result
	Model  Model
	Err    error
}

// Featurize returns the text transform applied to every test utterance after
// loading: acronym folding, the locale processor, n-gram augmentation.
// Serving applies it to queries so they match the trained features.
func Featurize(proc processor.Func) func(string) string {
	joined := processor.Joined(proc)
	return func(s string) string {
		return ngram.AugmentString(joined(textnorm.FoldAcronyms(s)))
	}
}

// Prepare loads locale and runs every text stage up to augmentation.
func Prepare(ctx context.Context, cfg Config, procs *processor.Registry, locale string) (*corpus.Corpus, error) {
	c, err := corpus.LoadLocale(cfg.DataDir, locale)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if cfg.UseAnnotations {
		c = corpus.UseAnnotated(c)
	}

	c, err = corpus.Map(c, textnorm.FoldAcronyms, corpus.AllFields...)
	if err != nil {
		return nil, fmt.Errorf("fold acronyms: %w", err)
	}

	proc, err := procs.Get(locale)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err = corpus.Map(c, processor.Joined(proc), corpus.FieldUtterances, corpus.FieldTests)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	c = corpus.Clean(c)

	c, err = corpus.Map(c, ngram.AugmentString, corpus.FieldUtterances, corpus.FieldTests)
	if err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}
	return c, nil
}

// RunLocale prepares, trains and measures one locale.
func RunLocale(ctx context.Context, cfg Config, procs *processor.Registry, newModel ModelFactory, locale string) Outcome {
	out := Outcome{Locale: locale}

	c, err := Prepare(ctx, cfg, procs, locale)
	if err != nil {
		out.Err = fmt.Errorf("locale %s: %w", locale, err)
		return out
	}
	out.Stats = c.Stats

	m := newModel(locale)
	if err := m.Train(ctx, c); err != nil {
		out.Err = fmt.Errorf("locale %s: train: %w", locale, err)
		return out
	}

	res, err := eval.Measure(ctx, m, c, cfg.NoneIntent)
	if err != nil {
		out.Err = fmt.Errorf("locale %s: %w", locale, err)
		return out
	}
	out.Result = res
	out.Model = m
	return out
}

// Run processes the configured locales one after the other. A failing
// locale is logged and reported in its Outcome; the next locale still runs.
// A cancelled context stops the run before the next locale.
func Run(ctx context.Context, cfg Config, procs *processor.Registry, newModel ModelFactory, logger *slog.Logger) ([]Outcome, error) {
	locales, err := cfg.ResolveLocales()
	if err != nil {
		return nil, err
	}
	if len(locales) == 0 {
		return nil, fmt.Errorf("no locales found in %s", cfg.DataDir)
	}

	outcomes := make([]Outcome, 0, len(locales))
	for _, locale := range locales {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		start := time.Now()
		out := RunLocale(ctx, cfg, procs, newModel, locale)
		outcomes = append(outcomes, out)

		if out.Err != nil {
			if errors.Is(out.Err, context.Canceled) || errors.Is(out.Err, context.DeadlineExceeded) {
				return outcomes, ctx.Err()
			}
			logger.Error("locale failed", "locale", locale, "error", out.Err)
			continue
		}
		logger.Info("locale done",
			"locale", locale,
			"intents", out.Stats.Intents,
			"utterances", out.Stats.Utterances,
			"tests", out.Stats.Tests,
			"good", out.Result.Good,
			"total", out.Result.Total,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}
	return outcomes, nil
}

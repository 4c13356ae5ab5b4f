// CLAUDE:SUMMARY bench command: prepares, trains and evaluates every locale, prints per-locale accuracy, records the run and saves models.
package main

import (
	"fmt"
	"os"

	"github.com/hazyhaar/massive-bench/pkg/classifier"
	"github.com/hazyhaar/massive-bench/pkg/logging"
	"github.com/hazyhaar/massive-bench/pkg/pipeline"
	"github.com/hazyhaar/massive-bench/pkg/processor"
	"github.com/hazyhaar/massive-bench/pkg/report"
	"github.com/hazyhaar/massive-bench/pkg/store"
	"github.com/spf13/cobra"
)

var benchFlags struct {
	locales  []string
	settings string
	format   string
	noRecord bool
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Prepare, train and evaluate each locale",
	Long: `For each locale: load the train and test partitions, fold acronyms, run
the locale processor, drop training utterances that are ambiguous across
intents, add word-pair features, train the classifier and measure top-1
accuracy on the test partition. A failing locale is reported and skipped.`,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringSliceVar(&benchFlags.locales, "locale", nil, "locale to run (repeatable; default: config locales or every file in data_dir)")
	f.StringVar(&benchFlags.settings, "settings", "", "classifier settings YAML (overrides the config's classifier block)")
	f.StringVar(&benchFlags.format, "format", "ascii", "summary table format: ascii or markdown")
	f.BoolVar(&benchFlags.noRecord, "no-record", false, "do not record results in the run ledger")
}

func runBench(cmd *cobra.Command, _ []string) error {
	logger := logging.New("pipeline")
	mode, err := report.ParseMode(benchFlags.format)
	if err != nil {
		return err
	}

	settings := cfg.Classifier
	if benchFlags.settings != "" {
		if settings, err = classifier.LoadSettings(benchFlags.settings); err != nil {
			return err
		}
	}

	pcfg := cfg.Config
	if len(benchFlags.locales) > 0 {
		pcfg.Locales = benchFlags.locales
	}

	procs := processor.NewRegistry(cfg.Processor)
	newModel := func(string) pipeline.Model { return classifier.New(settings) }

	outcomes, runErr := pipeline.Run(cmd.Context(), pcfg, procs, newModel, logger)

	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		if o.Err == nil {
			fmt.Fprintln(out, o.Result.String())
		}
	}
	if len(outcomes) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.Summary(outcomes, mode))
	}

	if err := saveModels(outcomes); err != nil {
		return err
	}
	if err := recordRun(pcfg, outcomes); err != nil {
		return err
	}
	return runErr
}

func saveModels(outcomes []pipeline.Outcome) error {
	if cfg.ModelsDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.ModelsDir, 0o755); err != nil {
		return fmt.Errorf("create models dir: %w", err)
	}
	logger := logging.New("classifier")
	for _, o := range outcomes {
		m, ok := o.Model.(*classifier.Model)
		if o.Err != nil || !ok {
			continue
		}
		path := classifier.ModelPath(cfg.ModelsDir, o.Locale)
		if err := classifier.SaveGob(m, path); err != nil {
			return fmt.Errorf("save model %s: %w", o.Locale, err)
		}
		logger.Debug("model saved", "locale", o.Locale, "path", path)
	}
	return nil
}

func recordRun(pcfg pipeline.Config, outcomes []pipeline.Outcome) error {
	if benchFlags.noRecord || cfg.RunsDB == "" || len(outcomes) == 0 {
		return nil
	}
	rdb, err := store.OpenRunDB(cfg.RunsDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	runID := store.NewRunID()
	for _, o := range outcomes {
		if err := rdb.Record(runID, pcfg, o); err != nil {
			return err
		}
	}
	logging.New("pipeline").Info("run recorded", "run_id", runID, "locales", len(outcomes), "db", cfg.RunsDB)
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hazyhaar/massive-bench/pkg/corpus"
	"github.com/hazyhaar/massive-bench/pkg/logging"
	"github.com/hazyhaar/massive-bench/pkg/pipeline"
	"github.com/hazyhaar/massive-bench/pkg/processor"
	"github.com/spf13/cobra"
)

var prepareFlags struct {
	out     string
	locales []string
}

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Write each prepared corpus as JSON for external trainers",
	RunE:  runPrepare,
}

func init() {
	f := prepareCmd.Flags()
	f.StringVarP(&prepareFlags.out, "out", "o", "prepared", "output directory")
	f.StringSliceVar(&prepareFlags.locales, "locale", nil, "locale to prepare (repeatable)")
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	logger := logging.New("pipeline")

	pcfg := cfg.Config
	if len(prepareFlags.locales) > 0 {
		pcfg.Locales = prepareFlags.locales
	}
	locales, err := pcfg.ResolveLocales()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(prepareFlags.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	procs := processor.NewRegistry(cfg.Processor)
	var failed int
	for _, locale := range locales {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		c, err := pipeline.Prepare(cmd.Context(), pcfg, procs, locale)
		if err != nil {
			failed++
			logger.Error("locale failed", "locale", locale, "error", err)
			continue
		}
		path := filepath.Join(prepareFlags.out, locale+".json")
		if err := corpus.SaveJSON(c, path); err != nil {
			return err
		}
		logger.Info("locale prepared", "locale", locale, "intents", c.Stats.Intents,
			"utterances", c.Stats.Utterances, "tests", c.Stats.Tests, "path", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d locales failed", failed, len(locales))
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/hazyhaar/massive-bench/pkg/report"
	"github.com/hazyhaar/massive-bench/pkg/store"
	"github.com/spf13/cobra"
)

var runsFlags struct {
	locale string
	limit  int
	format string
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded benchmark results",
	RunE:  runRuns,
}

func init() {
	f := runsCmd.Flags()
	f.StringVar(&runsFlags.locale, "locale", "", "show the full history of one locale")
	f.IntVar(&runsFlags.limit, "limit", 50, "most recent rows to show (0 = all)")
	f.StringVar(&runsFlags.format, "format", "ascii", "table format: ascii or markdown")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	mode, err := report.ParseMode(runsFlags.format)
	if err != nil {
		return err
	}
	if cfg.RunsDB == "" {
		return fmt.Errorf("runs_db is not set")
	}
	rdb, err := store.OpenRunDB(cfg.RunsDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	var runs []store.Run
	if runsFlags.locale != "" {
		runs, err = rdb.LocaleHistory(runsFlags.locale)
	} else {
		runs, err = rdb.ListRuns(runsFlags.limit)
	}
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.Runs(runs, mode))
	return nil
}

// CLAUDE:SUMMARY fetch and sources commands: download dataset releases into data_dir, list/check/override their URLs.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/hazyhaar/massive-bench/pkg/logging"
	"github.com/hazyhaar/massive-bench/pkg/source"
	"github.com/spf13/cobra"
)

var fetchFlags struct {
	source string
	all    bool
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a dataset release into data_dir",
	RunE:  runFetch,
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage dataset source URLs",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dataset sources and their last availability check",
	RunE:  runSourcesList,
}

var sourcesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "HEAD-check every source URL",
	RunE:  runSourcesCheck,
}

var sourcesSetURLCmd = &cobra.Command{
	Use:   "set-url <source> <url>",
	Short: "Override the download URL of a source",
	Args:  cobra.ExactArgs(2),
	RunE:  runSourcesSetURL,
}

func init() {
	f := fetchCmd.Flags()
	f.StringVar(&fetchFlags.source, "source", "", "source to fetch (e.g. massive-1.1)")
	f.BoolVar(&fetchFlags.all, "all", false, "fetch every source")
	fetchCmd.MarkFlagsMutuallyExclusive("source", "all")
	fetchCmd.MarkFlagsOneRequired("source", "all")

	sourcesCmd.AddCommand(sourcesListCmd, sourcesCheckCmd, sourcesSetURLCmd)
}

// openSources opens the source table and seeds one row per registered adapter.
func openSources() (*source.SourceDB, error) {
	sdb, err := source.OpenSourceDB(cfg.SourcesDB)
	if err != nil {
		return nil, err
	}
	if err := sdb.Seed(source.All()); err != nil {
		sdb.Close()
		return nil, err
	}
	return sdb, nil
}

func runFetch(cmd *cobra.Command, _ []string) error {
	sdb, err := openSources()
	if err != nil {
		return err
	}
	defer sdb.Close()

	adapters := source.All()
	if !fetchFlags.all {
		a, err := source.Get(fetchFlags.source)
		if err != nil {
			return err
		}
		adapters = []source.Adapter{a}
	}

	out := cmd.OutOrStdout()
	for _, a := range adapters {
		url, err := sdb.GetURL(a.ID())
		if err != nil {
			return err
		}
		m, err := a.Fetch(cmd.Context(), url, cfg.DataDir)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", a.ID(), err)
		}
		if err := sdb.RecordFetch(a.ID(), len(m.Locales)); err != nil {
			return err
		}
		fmt.Fprintf(out, "[%s] %d locales in %s (%s)\n", a.ID(), len(m.Locales), cfg.DataDir, m.License)
	}
	return nil
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	sdb, err := openSources()
	if err != nil {
		return err
	}
	defer sdb.Close()

	sources, err := sdb.ListSources()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tLICENSE\tSTATUS\tLOCALES\tURL")
	for _, src := range sources {
		status := "-"
		if src.LastStatus != nil {
			status = fmt.Sprintf("%d", *src.LastStatus)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", src.AdapterID, src.License, status, src.Locales, src.SourceURL)
	}
	return w.Flush()
}

func runSourcesCheck(cmd *cobra.Command, _ []string) error {
	sdb, err := openSources()
	if err != nil {
		return err
	}
	defer sdb.Close()

	sum, err := source.NewChecker(sdb, logging.New("source")).CheckAll(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d ok, %d failed\n", sum.OK, sum.Failed)
	return nil
}

func runSourcesSetURL(cmd *cobra.Command, args []string) error {
	if _, err := source.Get(args[0]); err != nil {
		return err
	}
	sdb, err := openSources()
	if err != nil {
		return err
	}
	defer sdb.Close()

	if err := sdb.SetURL(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
	return nil
}

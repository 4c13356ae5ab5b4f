// CLAUDE:SUMMARY Dataset adapters for the Amazon MASSIVE releases (tar.gz of one jsonl file per locale).
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/massive-bench/pkg/logging"
)

func init() {
	Register(&massiveAdapter{
		version: "1.1",
		url:     "https://amazon-massive-nlu-dataset.s3.amazonaws.com/amazon-massive-dataset-1.1.tar.gz",
	})
	Register(&massiveAdapter{
		version: "1.0",
		url:     "https://amazon-massive-nlu-dataset.s3.amazonaws.com/amazon-massive-dataset-1.0.tar.gz",
	})
}

type massiveAdapter struct {
	version string
	url     string
}

func (a *massiveAdapter) ID() string { return "massive-" + a.version }
func (a *massiveAdapter) Description() string {
	return fmt.Sprintf("Amazon MASSIVE %s (multilingual intent and slot corpus)", a.version)
}
func (a *massiveAdapter) DefaultURL() string { return a.url }
func (a *massiveAdapter) License() string    { return "CC BY 4.0" }

func (a *massiveAdapter) Fetch(ctx context.Context, sourceURL, dataDir string) (*Manifest, error) {
	logger := logging.New("source")

	if err := ensureDir(dataDir); err != nil {
		return nil, err
	}
	dlDir, err := os.MkdirTemp(dataDir, "_download")
	if err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	defer os.RemoveAll(dlDir)

	archive := filepath.Join(dlDir, "massive.tar.gz")
	logger.Info("downloading", "source", a.ID(), "url", sourceURL)
	if err := downloadFile(ctx, sourceURL, archive); err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	locales, err := extractLocales(archive, dataDir)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	logger.Info("extracted", "source", a.ID(), "locales", len(locales), "dir", dataDir)

	m := &Manifest{
		Source:    a.ID(),
		SourceURL: sourceURL,
		License:   a.License(),
		Locales:   locales,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := WriteManifest(dataDir, m); err != nil {
		return nil, err
	}
	return m, nil
}

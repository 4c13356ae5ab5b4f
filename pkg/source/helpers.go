// CLAUDE:SUMMARY Fetch utilities: HTTP download with retries, tar.gz extraction of locale files, manifest YAML read/write.
package source

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hazyhaar/massive-bench/pkg/corpus"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

const (
	downloadAttempts = 3
	// ManifestFile is written into the data directory after a fetch.
	ManifestFile = "manifest.yaml"
)

// retryBackoff is the base delay between download attempts; attempt n waits
// retryBackoff << n.
var retryBackoff = time.Second

// Manifest records where the locale files of a data directory came from.
type Manifest struct {
	Source    string   `yaml:"source"`
	SourceURL string   `yaml:"source_url"`
	License   string   `yaml:"license"`
	Locales   []string `yaml:"locales"`
	FetchedAt string   `yaml:"fetched_at"`
}

// downloadFile downloads url to dest with retries and timeout.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < downloadAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff << uint(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after %d attempts: %w", url, downloadAttempts, lastErr)
}

// extractLocales copies every *.jsonl entry of the tar.gz archive at src
// into destDir, flattening directories, and returns the sorted locales found.
func extractLocales(src, destDir string) ([]string, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer zr.Close()

	var locales []string
	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		base := filepath.Base(hdr.Name)
		if !strings.HasSuffix(base, corpus.FileExt) || strings.HasPrefix(base, ".") {
			continue
		}

		destPath := filepath.Join(destDir, base)
		out, err := os.Create(destPath)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", destPath, err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return nil, fmt.Errorf("extract %s: %w", hdr.Name, err)
		}
		if err := out.Close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", destPath, err)
		}
		locales = append(locales, strings.TrimSuffix(base, corpus.FileExt))
	}
	if len(locales) == 0 {
		return nil, fmt.Errorf("no %s files in archive", corpus.FileExt)
	}
	sort.Strings(locales)
	return locales, nil
}

// WriteManifest writes m as YAML to dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644)
}

// LoadManifest reads dir/manifest.yaml.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

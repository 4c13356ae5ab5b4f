package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Registry when model snapshots in its directory change.
// Bursts of events are coalesced into one reload.
type Watcher struct {
	reg      *Registry
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher returns a Watcher for reg's directory.
func NewWatcher(reg *Registry, logger *slog.Logger, debounce time.Duration) *Watcher {
	return &Watcher{reg: reg, logger: logger, debounce: debounce}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.reg.modelsDir); err != nil {
		return fmt.Errorf("watch %s: %w", w.reg.modelsDir, err)
	}
	w.logger.Info("watching models", "dir", w.reg.modelsDir)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ModelExt) {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("model watcher", "error", err)

		case <-timer.C:
			if err := w.reg.Reload(); err != nil {
				w.logger.Error("reload models", "error", err)
				continue
			}
			w.logger.Info("models reloaded", "models", w.reg.ModelCount())
		}
	}
}

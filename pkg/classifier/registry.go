package classifier

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry holds the trained models of a directory and serves them by locale.
type Registry struct {
	mu        sync.RWMutex
	models    map[string]*Model
	modelsDir string
}

// NewRegistry creates a new empty registry for the given directory.
func NewRegistry(modelsDir string) *Registry {
	return &Registry{
		models:    make(map[string]*Model),
		modelsDir: modelsDir,
	}
}

// Load reads every model snapshot of the directory.
func (r *Registry) Load() error {
	entries, err := os.ReadDir(r.modelsDir)
	if err != nil {
		return fmt.Errorf("read models dir %s: %w", r.modelsDir, err)
	}

	newModels := make(map[string]*Model)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ModelExt) {
			continue
		}
		m, err := LoadGob(filepath.Join(r.modelsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("load model %s: %w", entry.Name(), err)
		}
		if m.Locale == "" {
			m.Locale = strings.TrimSuffix(entry.Name(), ModelExt)
		}
		newModels[m.Locale] = m
	}

	r.mu.Lock()
	r.models = newModels
	r.mu.Unlock()
	return nil
}

// Reload reloads all models from disk (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

// Put registers m under its locale, replacing any previous model.
func (r *Registry) Put(m *Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.Locale] = m
}

// Get returns the model of locale.
func (r *Registry) Get(locale string) (*Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[locale]
	return m, ok
}

// ModelInfo is the public metadata of a loaded model.
type ModelInfo struct {
	Locale     string `json:"locale"`
	Intents    int    `json:"intents"`
	Utterances int    `json:"utterances"`
	Features   int    `json:"features"`
}

// ListModels returns metadata for all loaded models, sorted by locale.
func (r *Registry) ListModels() []ModelInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ModelInfo, 0, len(r.models))
	for _, m := range r.models {
		infos = append(infos, ModelInfo{
			Locale:     m.Locale,
			Intents:    len(m.Intents),
			Utterances: m.TotalDocs,
			Features:   len(m.Vocabulary),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Locale < infos[j].Locale })
	return infos
}

// ModelCount returns the number of loaded models.
func (r *Registry) ModelCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

package source

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Adapter fetches one dataset release and lays it out as a <locale>.jsonl
// file per locale in a data directory.
type Adapter interface {
	ID() string
	Description() string
	// DefaultURL seeds the source table; SetURL can override it.
	DefaultURL() string
	License() string
	// Fetch downloads the archive at sourceURL, extracts its locale files into
	// dataDir and writes manifest.yaml next to them.
	Fetch(ctx context.Context, sourceURL, dataDir string) (*Manifest, error)
}

var registry struct {
	sync.RWMutex
	byID map[string]Adapter
}

// Register makes a dataset release available to fetch. Registering an ID
// twice panics.
func Register(a Adapter) {
	registry.Lock()
	defer registry.Unlock()
	if registry.byID == nil {
		registry.byID = make(map[string]Adapter)
	}
	if _, dup := registry.byID[a.ID()]; dup {
		panic("source: duplicate adapter " + a.ID())
	}
	registry.byID[a.ID()] = a
}

// Get looks up a release by ID.
func Get(id string) (Adapter, error) {
	registry.RLock()
	defer registry.RUnlock()
	if a, ok := registry.byID[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("unknown dataset source %q", id)
}

// All lists every release, by ID.
func All() []Adapter {
	registry.RLock()
	defer registry.RUnlock()
	return slices.SortedFunc(maps.Values(registry.byID), func(a, b Adapter) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}

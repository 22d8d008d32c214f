// Package mirror holds a client-side snapshot of authorization decisions.
// The snapshot is advisory: it drives what a UI shows, while the server
// keeps enforcing every operation. Pairs not covered by the last load are
// reported as unknown and treated as denied.
package mirror

import (
	"context"
	"sync"

	"github.com/permitio/docgate"
)

// Pair is a single action/resource combination tracked by the mirror.
type Pair struct {
	Action   docgate.Action
	Resource docgate.Resource
}

// Loader fetches decisions for a batch of pairs on behalf of a subject.
// Results must preserve the order of the requested pairs.
type Loader interface {
	LoadDecisions(ctx context.Context, subject docgate.Subject, pairs []Pair) ([]bool, error)
}

// Mirror caches bulk-loaded authorization decisions for one subject.
type Mirror struct {
	mu      sync.RWMutex
	loader  Loader
	entries map[string]bool
	loaded  bool
	gen     uint64
}

// New creates an unloaded mirror backed by the given loader.
func New(loader Loader) *Mirror {
	return &Mirror{loader: loader}
}

// Load fetches decisions for all pairs and replaces the snapshot. When
// loads overlap, the most recently started one wins; results of superseded
// loads are discarded. A failed load leaves the mirror unloaded so every
// pair stays denied.
func (m *Mirror) Load(ctx context.Context, subject docgate.Subject, pairs []Pair) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.loaded = false
	m.entries = nil
	m.mu.Unlock()

	results, err := m.loader.LoadDecisions(ctx, subject, pairs)
	if err != nil {
		return err
	}

	entries := make(map[string]bool, len(pairs))
	for i, p := range pairs {
		allowed := false
		if i < len(results) {
			allowed = results[i]
		}
		entries[pairKey(p)] = allowed
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// A newer load superseded this one.
		return nil
	}
	m.entries = entries
	m.loaded = true
	return nil
}

// Check reports whether the pair is allowed and whether the snapshot
// covers it at all. Unknown pairs must be treated as denied.
func (m *Mirror) Check(action docgate.Action, resource docgate.Resource) (allowed, known bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return false, false
	}
	allowed, known = m.entries[pairKey(Pair{Action: action, Resource: resource})]
	return allowed, known
}

// Allowed is the fail-closed form of Check: unknown means denied.
func (m *Mirror) Allowed(action docgate.Action, resource docgate.Resource) bool {
	allowed, known := m.Check(action, resource)
	return known && allowed
}

// Loaded reports whether a load has completed since the last reset.
func (m *Mirror) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// Reset discards the snapshot, returning the mirror to the unloaded state.
func (m *Mirror) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.loaded = false
	m.entries = nil
}

func pairKey(p Pair) string {
	return string(p.Action) + "|" + p.Resource.String()
}

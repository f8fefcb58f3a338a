package rules

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/nstehr/vimy/vimy-rat/rat"
)

var ErrUnknownFilter = errors.New("unknown filter")

// Registry holds compiled named filters. Requests refer to filters by name
// or pass an inline expression.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]*Filter
}

// NewRegistry compiles every source in defs (name → expr).
func NewRegistry(defs map[string]string) (*Registry, error) {
	compiled, err := compileFilters(defs)
	if err != nil {
		return nil, err
	}
	return &Registry{filters: compiled}, nil
}

// Lookup returns the named filter.
func (r *Registry) Lookup(name string) (*Filter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return f, nil
}

// Resolve turns a request's filter string into a predicate. An empty string
// means no filter; a registered name selects that filter; anything else is
// compiled as an inline expression. Names may be combined with "+".
func (r *Registry) Resolve(query string) (rat.UnitFilter, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if f, err := r.Lookup(query); err == nil {
		return f.UnitFilter(), nil
	}

	if parts := strings.Split(query, "+"); len(parts) > 1 {
		var combined []rat.UnitFilter
		for _, p := range parts {
			f, err := r.Lookup(strings.TrimSpace(p))
			if err != nil {
				combined = nil
				break
			}
			combined = append(combined, f.UnitFilter())
		}
		if combined != nil {
			return All(combined...), nil
		}
	}

	f, err := CompileFilter("inline", query)
	if err != nil {
		return nil, err
	}
	return f.UnitFilter(), nil
}

// Names lists registered filters in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.filters))
	for n := range r.filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Swap atomically replaces the filter set. Compiles first; if compilation
// fails the old filters remain active.
func (r *Registry) Swap(defs map[string]string) error {
	compiled, err := compileFilters(defs)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.filters = compiled
	r.mu.Unlock()
	slog.Info("filter set swapped", "count", len(compiled))
	return nil
}

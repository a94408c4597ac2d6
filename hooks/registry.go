package hooks

import (
	"sort"
	"sync"
)

// HelperRegistry holds the host's named helpers. Registration is safe for
// concurrent use so hosts can install helpers while watchers or other
// goroutines hold the environment; rendering itself stays single-threaded.
type HelperRegistry struct {
	mu      sync.RWMutex
	helpers map[string]Helper
}

// NewHelperRegistry returns an empty registry.
func NewHelperRegistry() *HelperRegistry {
	return &HelperRegistry{helpers: make(map[string]Helper)}
}

// Register installs or replaces a helper.
func (r *HelperRegistry) Register(name string, h Helper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpers[name] = h
}

// Get retrieves a helper by name.
func (r *HelperRegistry) Get(name string) (Helper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.helpers[name]
	return h, ok
}

// Has reports whether a helper is registered under name.
func (r *HelperRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns all registered helper names, sorted.
func (r *HelperRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.helpers))
	for name := range r.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup retrieves a helper or fails with a LookupError carrying the
// closest registered name as a suggestion.
func (r *HelperRegistry) Lookup(name string) (Helper, error) {
	if h, ok := r.Get(name); ok {
		return h, nil
	}
	return nil, &LookupError{Kind: LookupHelper, Name: name, Suggestion: bestMatch(name, r.Names())}
}

// PartialRegistry holds named templates for the partial keyword and hook.
type PartialRegistry struct {
	mu       sync.RWMutex
	partials map[string]Template
}

// NewPartialRegistry returns an empty registry.
func NewPartialRegistry() *PartialRegistry {
	return &PartialRegistry{partials: make(map[string]Template)}
}

// Register installs or replaces a partial.
func (r *PartialRegistry) Register(name string, t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partials[name] = t
}

// Get retrieves a partial by name.
func (r *PartialRegistry) Get(name string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.partials[name]
	return t, ok
}

// Names returns all registered partial names, sorted.
func (r *PartialRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.partials))
	for name := range r.partials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup retrieves a partial or fails with a LookupError carrying the
// closest registered name as a suggestion.
func (r *PartialRegistry) Lookup(name string) (Template, error) {
	if t, ok := r.Get(name); ok {
		return t, nil
	}
	return nil, &LookupError{Kind: LookupPartial, Name: name, Suggestion: bestMatch(name, r.Names())}
}

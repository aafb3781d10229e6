package plugin

import (
	"fmt"
	"sync"

	"github.com/hookmux/hookmux/internal/hook"
	"github.com/hookmux/hookmux/internal/hookerrors"
)

// Registry is the process-wide catalog of plugin descriptors. Registration
// order is the only ordering guarantee Resolve makes.
type Registry struct {
	order []string
	byID  map[string]Descriptor
	mu    sync.RWMutex
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]Descriptor),
	}
}

// Register adds a descriptor to the catalog. Registering the same
// identifier twice is an error.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		return fmt.Errorf("plugin identifier cannot be empty")
	}
	if d.Check == nil {
		return fmt.Errorf("plugin %s: check routine cannot be nil", d.ID)
	}
	if len(d.Hooks) == 0 {
		return fmt.Errorf("plugin %s: must serve at least one hook type", d.ID)
	}
	for _, t := range d.Hooks {
		if !t.Valid() {
			return fmt.Errorf("plugin %s: %q is not a supported git hook", d.ID, t)
		}
	}

	if _, exists := r.byID[d.ID]; exists {
		return hookerrors.DuplicatePlugin(d.ID)
	}

	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

// Resolve returns all descriptors capable of serving the hook type, in
// registration order
func (r *Registry) Resolve(t hook.Type) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var descriptors []Descriptor
	for _, id := range r.order {
		d := r.byID[id]
		if d.Serves(t) {
			descriptors = append(descriptors, d)
		}
	}
	return descriptors
}

// Lookup returns the descriptor for an identifier, or an UnknownPlugin
// error if absent
func (r *Registry) Lookup(id string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, exists := r.byID[id]
	if !exists {
		return Descriptor{}, hookerrors.UnknownPlugin(id, r.order)
	}
	return d, nil
}

// IDs returns all registered identifiers in registration order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

package window

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/scrollpace/viewport"
)

// Handle identifies a registered window
type Handle struct {
	id string
}

// ID returns the window ID the handle refers to
func (h Handle) ID() string { return h.id }

// specSet is an immutable snapshot of registered specs
// Replaced wholesale on every mutation; tick-time readers never observe a
// partially updated set
type specSet struct {
	specs []Spec
	index map[string]int
}

var emptySet = &specSet{index: map[string]int{}}

// Registry holds the current window definitions
// Thread-Safety:
//   - Register/Deregister: mutex-serialized copy-on-write
//   - Resolve/Specs: lock-free atomic snapshot read (scheduler tick path)
type Registry struct {
	mu  sync.Mutex
	set atomic.Pointer[specSet]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.set.Store(emptySet)
	return r
}

// Register validates and installs a spec, returning its handle
// Re-registering an existing ID replaces the previous definition
// atomically; a tick already scheduled resolves whichever set is current
// when it fires
func (r *Registry) Register(spec Spec) (Handle, error) {
	if err := spec.Validate(); err != nil {
		return Handle{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.set.Load()
	next := &specSet{
		specs: make([]Spec, 0, len(old.specs)+1),
		index: make(map[string]int, len(old.index)+1),
	}
	for _, s := range old.specs {
		if s.ID == spec.ID {
			continue
		}
		next.index[s.ID] = len(next.specs)
		next.specs = append(next.specs, s)
	}
	next.index[spec.ID] = len(next.specs)
	next.specs = append(next.specs, spec)

	r.set.Store(next)
	return Handle{id: spec.ID}, nil
}

// Deregister removes the window for the handle
// Returns false if the handle no longer refers to a registered window
func (r *Registry) Deregister(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.set.Load()
	if _, ok := old.index[h.id]; !ok {
		return false
	}

	next := &specSet{
		specs: make([]Spec, 0, len(old.specs)-1),
		index: make(map[string]int, len(old.index)-1),
	}
	for _, s := range old.specs {
		if s.ID == h.id {
			continue
		}
		next.index[s.ID] = len(next.specs)
		next.specs = append(next.specs, s)
	}

	r.set.Store(next)
	return true
}

// Len returns the number of registered windows
func (r *Registry) Len() int {
	return len(r.set.Load().specs)
}

// Specs returns a copy of the current definitions in registration order
func (r *Registry) Specs() []Spec {
	cur := r.set.Load().specs
	out := make([]Spec, len(cur))
	copy(out, cur)
	return out
}

// Resolve returns every registered window in absolute units under the
// given metrics. Pure given an identical set and metrics
func (r *Registry) Resolve(m viewport.Metrics) []Resolved {
	cur := r.set.Load().specs
	out := make([]Resolved, len(cur))
	for i, s := range cur {
		out[i] = s.Resolve(m)
	}
	return out
}

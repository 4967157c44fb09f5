// Package plugin maps the parser and plugin references named in a
// configuration to opaque handles bound once at startup.
package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownPlugin   = errors.New("unknown plugin reference")
	ErrDuplicatePlugin = errors.New("plugin reference already registered")
	ErrKindMismatch    = errors.New("plugin reference has the wrong kind")
)

// Kind distinguishes parsers from rule plugins.
type Kind int

const (
	KindPlugin Kind = iota
	KindParser
)

func (k Kind) String() string {
	if k == KindParser {
		return "parser"
	}
	return "plugin"
}

// Handle is an opaque reference to a parser or plugin implementation. The
// resolver hands handles through to the rule-checking engine untouched.
type Handle interface {
	Name() string
	Kind() Kind
}

type moduleHandle struct {
	name     string
	kind     Kind
	resolved bool
}

// NewHandle returns a handle for the module named ref.
func NewHandle(ref string, kind Kind) Handle {
	return &moduleHandle{name: ref, kind: kind, resolved: true}
}

// Unresolved returns a handle for a reference no registry has vouched for.
func Unresolved(ref string, kind Kind) Handle {
	return &moduleHandle{name: ref, kind: kind}
}

func (h *moduleHandle) Name() string { return h.name }
func (h *moduleHandle) Kind() Kind   { return h.kind }

func (h *moduleHandle) MarshalText() ([]byte, error) {
	return []byte(h.name), nil
}

// IsResolved reports whether h was produced by a registry rather than passed
// through unchecked.
func IsResolved(h Handle) bool {
	if mh, ok := h.(*moduleHandle); ok {
		return mh.resolved
	}
	return h != nil
}

// Registry holds handles keyed by implementation reference.
type Registry struct {
	handles map[string]Handle
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]Handle)}
}

// Register adds h under its name. Registering the same reference twice fails.
func (r *Registry) Register(h Handle) error {
	if h == nil || h.Name() == "" {
		return errors.New("plugin handle must have a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handles[h.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, h.Name())
	}
	r.handles[h.Name()] = h
	return nil
}

// Lookup returns the handle registered for ref.
func (r *Registry) Lookup(ref string) (Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handles[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, ref)
	}
	return h, nil
}

// LookupKind is Lookup with a check that the handle is of the expected kind.
func (r *Registry) LookupKind(ref string, kind Kind) (Handle, error) {
	h, err := r.Lookup(ref)
	if err != nil {
		return nil, err
	}
	if h.Kind() != kind {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrKindMismatch, ref, h.Kind(), kind)
	}
	return h, nil
}

// Names returns the registered references in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handles))
	for name := range r.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package scene

import "github.com/pkg/errors"

// Registry maps stable component names to node handles and keeps the
// canonical order that pose data is keyed by. It is read-only once built.
type Registry struct {
	byName map[string]int
	names  []string
	order  []ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register appends name at the end of the canonical order.
func (r *Registry) Register(name string, id ID) error {
	if _, ok := r.byName[name]; ok {
		return errors.Wrapf(ErrDuplicateName, "%q", name)
	}
	r.byName[name] = len(r.order)
	r.names = append(r.names, name)
	r.order = append(r.order, id)
	return nil
}

// Lookup returns the handle registered under name.
func (r *Registry) Lookup(name string) (ID, error) {
	i, ok := r.byName[name]
	if !ok {
		return Nil, errors.Wrapf(ErrUnknownComponent, "%q", name)
	}
	return r.order[i], nil
}

// Index returns the canonical position of name, or -1.
func (r *Registry) Index(name string) int {
	i, ok := r.byName[name]
	if !ok {
		return -1
	}
	return i
}

// Len returns the number of registered components.
func (r *Registry) Len() int { return len(r.order) }

// Names returns component names in canonical order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Order returns component handles in canonical order.
func (r *Registry) Order() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Name returns the name at canonical position i.
func (r *Registry) Name(i int) string { return r.names[i] }

package layout

import (
	"fmt"
	"sort"
)

// Registry is the fixed table of archetypes available to a game.
type Registry struct {
	list   []*Archetype
	byName map[string]*Archetype
}

// NewRegistry returns the built-in archetypes in menu order.
func NewRegistry() *Registry {
	return MustRegistry(Twin(), Thin(), Cylinder(), Triple(), Cubic(), HShaped(), Cross())
}

// MustRegistry builds a registry and panics if any table is inconsistent.
// Archetype tables are program data, so a bad one is a build defect.
func MustRegistry(archetypes ...*Archetype) *Registry {
	r := &Registry{byName: make(map[string]*Archetype, len(archetypes))}
	for _, a := range archetypes {
		if err := a.Validate(); err != nil {
			panic(fmt.Sprintf("layout: invalid archetype: %v", err))
		}
		if _, dup := r.byName[a.Name]; dup {
			panic(fmt.Sprintf("layout: duplicate archetype %q", a.Name))
		}
		r.list = append(r.list, a)
		r.byName[a.Name] = a
	}
	return r
}

// Lookup finds an archetype by name.
func (r *Registry) Lookup(name string) (*Archetype, error) {
	a, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	return a, nil
}

// At returns the i-th archetype, or nil when out of range.
func (r *Registry) At(i int) *Archetype {
	if i < 0 || i >= len(r.list) {
		return nil
	}
	return r.list[i]
}

// Len returns the number of archetypes.
func (r *Registry) Len() int { return len(r.list) }

// Names returns archetype names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.list))
	for _, a := range r.list {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}

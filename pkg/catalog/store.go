package catalog

import (
	"fmt"
	"sort"
)

// Store holds the loaded components. It is immutable after LoadFS returns
// and safe for concurrent reads.
type Store struct {
	components map[string]Component
}

// Get returns a component by name.
func (s *Store) Get(name string) (Component, error) {
	if s == nil {
		return Component{}, fmt.Errorf("catalog: %w: %q", ErrNotFound, name)
	}
	comp, ok := s.components[name]
	if !ok {
		return Component{}, fmt.Errorf("catalog: %w: %q", ErrNotFound, name)
	}
	return comp, nil
}

// Names returns the component names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.components))
	for name := range s.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a component is loaded.
func (s *Store) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.components[name]
	return ok
}

// Len returns the number of loaded components.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.components)
}

// Flatten returns a component and its transitive dependencies in
// dependency-first order, each component once. A cycle in the uses graph is
// an error.
func (s *Store) Flatten(name string) ([]Component, error) {
	var (
		out      []Component
		done     = make(map[string]bool)
		visiting = make(map[string]bool)
	)

	var visit func(string) error
	visit = func(n string) error {
		if done[n] {
			return nil
		}
		if visiting[n] {
			return fmt.Errorf("catalog: dependency cycle through %q", n)
		}

		comp, err := s.Get(n)
		if err != nil {
			return err
		}

		visiting[n] = true
		for _, dep := range comp.Uses {
			if err := visit(dep); err != nil {
				return err
			}
		}
		visiting[n] = false

		done[n] = true
		out = append(out, comp)
		return nil
	}

	if err := visit(name); err != nil {
		return nil, err
	}
	return out, nil
}

package engine

import (
	"context"
	"fmt"
)

// phase is one step of a generation run with its declared dependencies.
// Execution order is derived from the dependencies, never from the order
// phases happen to be listed in.
type phase struct {
	name  string
	after []string
	run   func(context.Context) error
}

// phaseOrder topologically sorts phases. Declaration order breaks ties, so
// the result is deterministic.
func phaseOrder(phases []phase) ([]phase, error) {
	index := make(map[string]phase, len(phases))
	for _, p := range phases {
		if _, dup := index[p.name]; dup {
			return nil, fmt.Errorf("duplicate phase: %s", p.name)
		}
		index[p.name] = p
	}

	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	var order []phase

	var visit func(string) error
	visit = func(name string) error {
		if visiting[name] {
			return fmt.Errorf("circular dependency detected involving phase: %s", name)
		}
		if visited[name] {
			return nil
		}

		p, ok := index[name]
		if !ok {
			return fmt.Errorf("dependency on unknown phase: %s", name)
		}

		visiting[name] = true
		for _, dep := range p.after {
			if err := visit(dep); err != nil {
				return err
			}
		}
		visiting[name] = false
		visited[name] = true
		order = append(order, p)
		return nil
	}

	for _, p := range phases {
		if err := visit(p.name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// ABOUTME: Builds the depends_on graph over retained hooks and computes topological layers
// ABOUTME: Edges into skipped/absent dependencies are dropped with a warning, not an error

package planner

import (
	"fmt"
	"sort"

	"github.com/githooks-go/githooks/internal/hookconfig"
	"github.com/githooks-go/githooks/internal/hookserrors"
)

// depGraph is an adjacency representation over retained hook names:
// deps[a] is the set of hooks that must complete before a starts.
type depGraph struct {
	deps map[string]map[string]bool
}

// buildDepGraph builds the graph for retained (name -> definition) hooks.
// A depends_on entry naming a hook that was skipped or never existed is
// dropped silently at this layer; the caller records the warning.
func buildDepGraph(retained map[string]hookconfig.HookDefinition) *depGraph {
	g := &depGraph{deps: make(map[string]map[string]bool, len(retained))}
	for name, hook := range retained {
		edges := map[string]bool{}
		for _, dep := range hook.DependsOn {
			if _, ok := retained[dep]; ok {
				edges[dep] = true
			}
		}
		g.deps[name] = edges
	}
	return g
}

// droppedDependencies returns, for diagnostics, every depends_on entry
// that referenced a hook not present in retained.
func droppedDependencies(retained map[string]hookconfig.HookDefinition) []string {
	var dropped []string
	for name, hook := range retained {
		for _, dep := range hook.DependsOn {
			if _, ok := retained[dep]; !ok {
				dropped = append(dropped, fmt.Sprintf("%s depends_on %s (dropped: not scheduled)", name, dep))
			}
		}
	}
	sort.Strings(dropped)
	return dropped
}

// topoLayers computes Kahn's-algorithm layers: layer 0 has every hook
// with no unresolved dependency, layer 1 has every hook whose
// dependencies are all in layer 0, and so on. Within a layer, hook names
// are sorted lexicographically for deterministic tie-breaking. Returns an
// error wrapping ErrCycleInDependencies if any hook can never be
// scheduled.
func topoLayers(g *depGraph) ([][]string, error) {
	remaining := make(map[string]map[string]bool, len(g.deps))
	for name, edges := range g.deps {
		copied := make(map[string]bool, len(edges))
		for e := range edges {
			copied[e] = true
		}
		remaining[name] = copied
	}

	var layers [][]string
	for len(remaining) > 0 {
		var layer []string
		for name, edges := range remaining {
			if len(edges) == 0 {
				layer = append(layer, name)
			}
		}
		if len(layer) == 0 {
			return nil, fmt.Errorf("%w: dependency graph has a cycle among %s",
				hookserrors.ErrCycleInDependencies, remainingNames(remaining))
		}
		sort.Strings(layer)
		layers = append(layers, layer)

		for _, done := range layer {
			delete(remaining, done)
		}
		for _, edges := range remaining {
			for _, done := range layer {
				delete(edges, done)
			}
		}
	}
	return layers, nil
}

func remainingNames(remaining map[string]map[string]bool) []string {
	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

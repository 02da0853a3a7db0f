// ABOUTME: Partitions a topologically-ordered hook set into phases per the group's execution mode
// ABOUTME: parallel mode splits each dependency layer into a read-only Parallel sub-phase and per-modifier Sequential sub-phases

package planner

import (
	"sort"

	"github.com/githooks-go/githooks/internal/hookconfig"
)

// partition builds phases for the retained/planned hooks given layers
// (topological order) and the group's execution mode.
func partition(mode hookconfig.GroupExecution, layers [][]string, planned map[string]PlannedHook) []Phase {
	switch mode {
	case hookconfig.ForceParallel:
		return partitionForceParallel(layers, planned)
	case hookconfig.Parallel:
		return partitionParallel(layers, planned)
	default: // Sequential
		return partitionSequential(layers, planned)
	}
}

// partitionSequential emits one Sequential phase per hook, in
// topological order (layers already carry lexicographic tie-break
// within each layer).
func partitionSequential(layers [][]string, planned map[string]PlannedHook) []Phase {
	var phases []Phase
	for _, layer := range layers {
		for _, name := range layer {
			phases = append(phases, Phase{Kind: Sequential, Hooks: []PlannedHook{planned[name]}})
		}
	}
	return phases
}

// partitionForceParallel collapses every hook into a single Parallel
// phase, ignoring the repository safety invariant. Unsafe by design; the
// caller is responsible for documenting this to the user.
func partitionForceParallel(layers [][]string, planned map[string]PlannedHook) []Phase {
	var names []string
	for _, layer := range layers {
		names = append(names, layer...)
	}
	sort.Strings(names)

	hooks := make([]PlannedHook, 0, len(names))
	for _, name := range names {
		hooks = append(hooks, planned[name])
	}
	if len(hooks) == 0 {
		return nil
	}
	return []Phase{{Kind: Parallel, Hooks: hooks}}
}

// partitionParallel implements the greedy layered schedule: within each
// dependency layer, all read-only hooks form one Parallel sub-phase, and
// each repository-modifying hook forms its own Sequential sub-phase
// (ordered lexicographically). No Parallel sub-phase ever contains a
// modifying hook.
func partitionParallel(layers [][]string, planned map[string]PlannedHook) []Phase {
	var phases []Phase
	for _, layer := range layers {
		var readOnly []PlannedHook
		var modifying []string

		for _, name := range layer {
			if planned[name].Hook.ModifiesRepository {
				modifying = append(modifying, name)
			} else {
				readOnly = append(readOnly, planned[name])
			}
		}

		if len(readOnly) > 0 {
			phases = append(phases, Phase{Kind: Parallel, Hooks: readOnly})
		}
		sort.Strings(modifying)
		for _, name := range modifying {
			phases = append(phases, Phase{Kind: Sequential, Hooks: []PlannedHook{planned[name]}})
		}
	}
	return phases
}

// ABOUTME: Top-level Planner entry point: expand, filter, order, and partition into an ExecutionPlan
// ABOUTME: See spec.md §4.4 for the algorithm this file implements end-to-end

package planner

import (
	"github.com/githooks-go/githooks/internal/hookconfig"
	"github.com/githooks-go/githooks/internal/log"
)

// Build produces an ExecutionPlan for entryName (a hook or group defined
// in ec) against the given changed paths.
func Build(ec *hookconfig.EffectiveConfig, entryName string, paths []string) (*ExecutionPlan, error) {
	names, mode, err := expand(ec, entryName)
	if err != nil {
		return nil, err
	}

	retained := make(map[string]hookconfig.HookDefinition, len(names))
	planned := make(map[string]PlannedHook, len(names))
	var skipped []SkippedHook

	for _, name := range names {
		hook := ec.Hooks[name]
		result := applyFilter(hook, paths)
		if !result.retain {
			skipped = append(skipped, SkippedHook{Name: name, Reason: result.skipReason})
			continue
		}
		retained[name] = hook
		planned[name] = PlannedHook{Hook: hook, MatchedPaths: result.matchedPaths}
	}

	for _, msg := range droppedDependencies(retained) {
		log.Warn("planner: %s", msg)
	}

	graph := buildDepGraph(retained)
	layers, err := topoLayers(graph)
	if err != nil {
		return nil, err
	}

	phases := partition(mode, layers, planned)

	return &ExecutionPlan{Phases: phases, Skipped: skipped}, nil
}

// ABOUTME: Recursively flattens a group's includes into a unique-by-name ordered hook list
// ABOUTME: Detects membership cycles via a DFS visited/in-progress set

package planner

import (
	"fmt"

	"github.com/githooks-go/githooks/internal/hookconfig"
	"github.com/githooks-go/githooks/internal/hookserrors"
)

// expand flattens entryName (a hook or group name in ec) into an ordered,
// de-duplicated (keep-first-occurrence) list of hook names, and the
// GroupExecution mode that should govern their scheduling. A bare hook
// entry behaves as a single-member sequential group.
func expand(ec *hookconfig.EffectiveConfig, entryName string) ([]string, hookconfig.GroupExecution, error) {
	if _, ok := ec.Hooks[entryName]; ok {
		return []string{entryName}, hookconfig.Sequential, nil
	}

	group, ok := ec.Groups[entryName]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", hookserrors.ErrNameNotFound, entryName)
	}

	seen := map[string]bool{}
	inProgress := map[string]bool{}
	var ordered []string

	var visit func(name string) error
	visit = func(name string) error {
		if seen[name] {
			return nil
		}
		if inProgress[name] {
			return fmt.Errorf("%w: %q participates in a group membership cycle", hookserrors.ErrCycleInGroup, name)
		}

		if hook, ok := ec.Hooks[name]; ok {
			_ = hook
			seen[name] = true
			ordered = append(ordered, name)
			return nil
		}

		g, ok := ec.Groups[name]
		if !ok {
			return fmt.Errorf("%w: %q", hookserrors.ErrNameNotFound, name)
		}

		inProgress[name] = true
		for _, member := range g.Includes {
			if err := visit(member); err != nil {
				return err
			}
		}
		inProgress[name] = false
		seen[name] = true
		return nil
	}

	for _, member := range group.Includes {
		if err := visit(member); err != nil {
			return nil, "", err
		}
	}

	return ordered, group.Execution, nil
}

// ABOUTME: File-glob filtering: union of positive doublestar patterns minus union of negatives
// ABOUTME: run_always disables the gate but files still populates argv, per the resolved Open Question

package planner

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/githooks-go/githooks/internal/hookconfig"
)

// filterResult is the outcome of applying one hook's file filter against
// the change set.
type filterResult struct {
	retain       bool
	matchedPaths []string
	skipReason   string
}

// applyFilter implements §4.4's filtering rule for one hook.
func applyFilter(hook hookconfig.HookDefinition, paths []string) filterResult {
	if hook.RunAlways {
		return filterResult{retain: true, matchedPaths: matchGlobs(hook.Files, paths)}
	}
	if len(hook.Files) == 0 {
		return filterResult{retain: true}
	}

	matched := matchGlobs(hook.Files, paths)
	if len(matched) == 0 {
		return filterResult{retain: false, skipReason: "no matching files"}
	}
	return filterResult{retain: true, matchedPaths: matched}
}

// matchGlobs returns the paths matching the union of positive patterns
// minus the union of negative (!-prefixed) patterns. A pattern list with
// no positive patterns (only negatives) matches nothing, since there is
// no positive set to subtract from.
func matchGlobs(patterns []string, paths []string) []string {
	var positive, negative []string
	for _, p := range patterns {
		if len(p) > 0 && p[0] == '!' {
			negative = append(negative, p[1:])
		} else {
			positive = append(positive, p)
		}
	}

	if len(positive) == 0 {
		return nil
	}

	var out []string
	for _, path := range paths {
		if !matchesAny(positive, path) {
			continue
		}
		if matchesAny(negative, path) {
			continue
		}
		out = append(out, path)
	}
	return out
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

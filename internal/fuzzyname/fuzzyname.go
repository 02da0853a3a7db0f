// ABOUTME: Thin wrapper over sahilm/fuzzy used for "did you mean" suggestions
// ABOUTME: when a hook or group name given on the command line can't be resolved

package fuzzyname

import "github.com/sahilm/fuzzy"

// Match represents a single fuzzy match result.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Find performs fuzzy matching of pattern against the given items.
// Returns matches sorted by score (best first).
func Find(pattern string, items []string) []Match {
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}

// Suggest returns the best-matching candidate names for an unresolved
// hook or group name, most likely first, capped at limit. Used to build
// the "did you mean" text on a name-not-found diagnostic. Returns an
// empty slice if nothing scores as a plausible match.
func Suggest(name string, candidates []string, limit int) []string {
	matches := Find(name, candidates)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	suggestions := make([]string, len(matches))
	for i, m := range matches {
		suggestions[i] = m.Str
	}
	return suggestions
}

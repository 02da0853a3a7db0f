// ABOUTME: Tests for the fuzzy name-suggestion wrapper
// ABOUTME: Verifies match ranking and did-you-mean suggestion behavior

package fuzzyname

import "testing"

func TestFind_BasicMatch(t *testing.T) {
	t.Parallel()

	items := []string{"lint-go", "lint-python", "format-go", "test-unit"}
	matches := Find("lint", items)

	if len(matches) == 0 {
		t.Fatal("expected matches for 'lint'")
	}
	found := false
	for _, m := range matches {
		if m.Str == "lint-go" || m.Str == "lint-python" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected 'lint-go' or 'lint-python' in results")
	}
}

func TestFind_NoMatch(t *testing.T) {
	t.Parallel()

	items := []string{"format-go", "test-unit"}
	matches := Find("zzz", items)

	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestFind_Empty(t *testing.T) {
	t.Parallel()

	matches := Find("", []string{"a", "b"})
	// An empty pattern yields no matches in sahilm/fuzzy; this only
	// checks that Find does not panic on it.
	_ = matches
}

func TestSuggest_RanksTyposHighest(t *testing.T) {
	t.Parallel()

	candidates := []string{"lint-go", "lint-python", "build", "docs"}
	suggestions := Suggest("lintgo", candidates, 3)

	if len(suggestions) == 0 {
		t.Fatal("expected at least one suggestion for 'lintgo'")
	}
	if suggestions[0] != "lint-go" {
		t.Errorf("Suggest[0] = %q, want %q", suggestions[0], "lint-go")
	}
}

func TestSuggest_LimitsResults(t *testing.T) {
	t.Parallel()

	candidates := []string{"lint-a", "lint-b", "lint-c", "lint-d"}
	suggestions := Suggest("lint", candidates, 2)

	if len(suggestions) > 2 {
		t.Errorf("Suggest returned %d results, want at most 2", len(suggestions))
	}
}

func TestSuggest_NoPlausibleMatch(t *testing.T) {
	t.Parallel()

	candidates := []string{"build", "docs"}
	suggestions := Suggest("zzzzz", candidates, 3)

	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", suggestions)
	}
}

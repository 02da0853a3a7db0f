// ABOUTME: Tests for placeholder expansion, the closed variable set, and CHANGED_FILES_FILE lifecycle

package template

import (
	"os"
	"strings"
	"testing"
)

func testContext() *Context {
	return NewContext("/repo/src", "/repo/src", "/repo", false, "", "/repo/.git", []string{"src/x.py", "src/y.py"})
}

// TestExpandArgv_S5 exercises S5: hook check with argv command
// ["ruff", "{HOOK_DIR_REL}"], matched paths src/x.py, src/y.py.
func TestExpandArgv_S5(t *testing.T) {
	t.Parallel()

	c := testContext()
	argv, err := ExpandArgv(c, []string{"ruff", "{HOOK_DIR_REL}"})
	if err != nil {
		t.Fatalf("ExpandArgv: %v", err)
	}
	if len(argv) != 2 || argv[0] != "ruff" || argv[1] != "src" {
		t.Errorf("ExpandArgv = %v, want [ruff src]", argv)
	}

	env, err := ExpandEnv(c, map[string]string{"CHANGED_FILES": "{CHANGED_FILES}"})
	if err != nil {
		t.Fatalf("ExpandEnv: %v", err)
	}
	if env["CHANGED_FILES"] != "src/x.py src/y.py" {
		t.Errorf("CHANGED_FILES = %q, want %q", env["CHANGED_FILES"], "src/x.py src/y.py")
	}
}

func TestExpand_UnrecognizedNameIsError(t *testing.T) {
	t.Parallel()

	c := testContext()
	if _, err := Expand(c, "{NOT_A_REAL_VAR}"); err == nil {
		t.Fatal("expected an error for an unrecognized template variable")
	}
}

func TestExpand_NoNestedExpansion(t *testing.T) {
	t.Parallel()

	c := NewContext("/repo", "/repo", "/repo", false, "", "", nil)
	// PROJECT_NAME expands to "repo", which itself is not a template
	// placeholder, so this mostly checks that a value containing brace
	// characters from an upstream source would not be re-scanned. Here
	// we confirm two independent placeholders each resolve once.
	out, err := Expand(c, "{PROJECT_NAME}-{PROJECT_NAME}")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if out != "repo-repo" {
		t.Errorf("Expand = %q, want %q", out, "repo-repo")
	}
}

func TestExpand_IsWorktree(t *testing.T) {
	t.Parallel()

	c := NewContext("/repo/wt", "/repo/wt", "/repo", true, "feature", "/repo/.git", nil)
	out, err := Expand(c, "{IS_WORKTREE} {WORKTREE_NAME} {COMMON_DIR}")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if out != "true feature /repo/.git" {
		t.Errorf("Expand = %q", out)
	}
}

func TestChangedFilesFile_ContainsNewlineJoinedPaths(t *testing.T) {
	t.Parallel()

	c := testContext()
	path, err := Expand(c, "{CHANGED_FILES_FILE}")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	defer c.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read changed files file: %v", err)
	}
	if !strings.Contains(string(data), "src/x.py\nsrc/y.py") {
		t.Errorf("changed files file contents = %q", data)
	}
}

func TestChangedFilesFile_ClosedRemovesFile(t *testing.T) {
	t.Parallel()

	c := testContext()
	path, err := Expand(c, "{CHANGED_FILES_FILE}")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected changed files file to be removed after Close, stat err = %v", err)
	}
}

func TestChangedFilesFile_SameFileAcrossExpansions(t *testing.T) {
	t.Parallel()

	c := testContext()
	defer c.Close()

	p1, err := Expand(c, "{CHANGED_FILES_FILE}")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	p2, err := Expand(c, "{CHANGED_FILES_FILE}")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if p1 != p2 {
		t.Errorf("CHANGED_FILES_FILE path changed across expansions: %q vs %q", p1, p2)
	}
}

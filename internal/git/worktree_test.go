// ABOUTME: Tests for read-only git worktree/repository queries
// ABOUTME: Uses temporary git repos for isolation; exercises real git commands

package git

import (
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// initTestRepo creates a temporary git repo with one empty commit.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	runGit(t, dir, "commit", "--allow-empty", "-m", "init")
	return dir
}

// runGit runs a git command in the given directory and returns trimmed stdout.
// Unlike gitCmd, this helper is not restricted to the read-only allowlist,
// since tests need to set up repository state (init, commit, worktree add).
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

var hexHashRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

func isFullHexHash(s string) bool {
	return hexHashRe.MatchString(s)
}

func TestList(t *testing.T) {
	t.Parallel()

	repo := initTestRepo(t)
	runGit(t, repo, "worktree", "add", "-b", "wt-alpha", filepath.Join(repo, "wt-alpha"))
	runGit(t, repo, "worktree", "add", "-b", "wt-beta", filepath.Join(repo, "wt-beta"))

	list, err := List(repo)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(list) != 3 {
		t.Fatalf("len(List) = %d, want 3", len(list))
	}

	if !list[0].Main {
		t.Error("first entry should have Main=true")
	}

	branches := make(map[string]bool)
	for _, w := range list {
		branches[w.Branch] = true
		if !isFullHexHash(w.Head) {
			t.Errorf("worktree %q: Head = %q, want 40-char hex hash", w.Path, w.Head)
		}
	}
	if !branches["wt-alpha"] || !branches["wt-beta"] {
		t.Errorf("expected wt-alpha and wt-beta branches in list, got %v", branches)
	}
}

func TestIsWorktree_MainRepo(t *testing.T) {
	t.Parallel()

	repo := initTestRepo(t)
	if !IsWorktree(repo) {
		t.Error("expected IsWorktree=true for main repo")
	}
}

func TestIsWorktree_Worktree(t *testing.T) {
	t.Parallel()

	repo := initTestRepo(t)
	wtPath := filepath.Join(repo, "wt-check")
	runGit(t, repo, "worktree", "add", "-b", "wt-check", wtPath)

	if !IsWorktree(wtPath) {
		t.Error("expected IsWorktree=true for created worktree")
	}
}

func TestIsWorktree_NotGit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if IsWorktree(dir) {
		t.Error("expected IsWorktree=false for non-git directory")
	}
}

func TestRepoRoot(t *testing.T) {
	t.Parallel()

	repo := initTestRepo(t)

	root, err := RepoRoot(repo)
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	resolvedRepo, _ := filepath.EvalSymlinks(repo)
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	if resolvedRoot != resolvedRepo {
		t.Errorf("RepoRoot = %q, want %q", root, repo)
	}
}

func TestCommonDir(t *testing.T) {
	t.Parallel()

	repo := initTestRepo(t)
	wtPath := filepath.Join(repo, "wt-common")
	runGit(t, repo, "worktree", "add", "-b", "wt-common", wtPath)

	mainCommon, err := CommonDir(repo)
	if err != nil {
		t.Fatalf("CommonDir(main): %v", err)
	}
	wtCommon, err := CommonDir(wtPath)
	if err != nil {
		t.Fatalf("CommonDir(worktree): %v", err)
	}

	resolvedMain, _ := filepath.EvalSymlinks(mainCommon)
	resolvedWt, _ := filepath.EvalSymlinks(wtCommon)
	if resolvedMain != resolvedWt {
		t.Errorf("CommonDir should match between main and worktree: %q vs %q", mainCommon, wtCommon)
	}
}

func TestCurrentWorktreeName(t *testing.T) {
	t.Parallel()

	repo := initTestRepo(t)
	wtPath := filepath.Join(repo, "wt-named")
	runGit(t, repo, "worktree", "add", "-b", "wt-named", wtPath)

	mainName, err := CurrentWorktreeName(repo)
	if err != nil {
		t.Fatalf("CurrentWorktreeName(main): %v", err)
	}
	if mainName != "" {
		t.Errorf("expected empty name for main worktree, got %q", mainName)
	}

	wtName, err := CurrentWorktreeName(wtPath)
	if err != nil {
		t.Fatalf("CurrentWorktreeName(worktree): %v", err)
	}
	if wtName != "wt-named" {
		t.Errorf("CurrentWorktreeName(worktree) = %q, want %q", wtName, "wt-named")
	}
}

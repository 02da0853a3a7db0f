package orchestrator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "test")
	return dir
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestRun_S1_ParallelWithModifier reproduces S1 end-to-end: lint and
// test run concurrently, fmt (the repository-modifying hook) runs
// afterward in its own sequential phase, and the run exits clean.
func TestRun_S1_ParallelWithModifier(t *testing.T) {
	repo := initRepo(t)
	writeFile(t, filepath.Join(repo, "hooks.toml"), `
[hooks.lint]
command = ["true"]
modifies_repository = false
run_always = true

[hooks.test]
command = ["true"]
modifies_repository = false
run_always = true

[hooks.fmt]
command = ["true"]
modifies_repository = true
run_always = true

[groups.pre-commit]
includes = ["lint", "test", "fmt"]
execution = "parallel"
`)
	writeFile(t, filepath.Join(repo, "a.txt"), "hello")
	runGit(t, repo, "add", "a.txt", "hooks.toml")

	orch, err := New(repo, false)
	if err != nil {
		t.Fatal(err)
	}

	report, err := orch.Run(context.Background(), "pre-commit", RunFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Success() {
		t.Fatalf("expected success, got %+v", report.Outcomes)
	}
	if len(report.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d: %+v", len(report.Outcomes), report.Outcomes)
	}
}

// TestRun_UnresolvedEventContributesNoHooks covers half of S2: a
// change set with no ancestor config defining the event yields an
// empty, successful report rather than an error.
func TestRun_UnresolvedEventContributesNoHooks(t *testing.T) {
	repo := initRepo(t)
	writeFile(t, filepath.Join(repo, "hooks.toml"), `
[hooks.pre-push]
command = ["true"]
modifies_repository = false
`)
	writeFile(t, filepath.Join(repo, "frontend", "b.js"), "// noop")
	runGit(t, repo, "add", ".")

	orch, err := New(repo, false)
	if err != nil {
		t.Fatal(err)
	}

	report, err := orch.Run(context.Background(), "pre-commit", RunFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %+v", report.Outcomes)
	}
	if !report.Success() {
		t.Fatal("an empty report is a successful run")
	}
}

func TestLint_ResolvesByNameAndRuns(t *testing.T) {
	repo := initRepo(t)
	writeFile(t, filepath.Join(repo, "hooks.toml"), `
[hooks.style]
command = ["true"]
modifies_repository = false
run_always = true
`)
	writeFile(t, filepath.Join(repo, "a.txt"), "hello")

	orch, err := New(repo, false)
	if err != nil {
		t.Fatal(err)
	}

	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	if err := os.Chdir(repo); err != nil {
		t.Fatal(err)
	}

	report, err := orch.Lint(context.Background(), "style", LintFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Success() {
		t.Fatalf("expected success, got %+v", report.Outcomes)
	}
}

package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/githooks-go/githooks/internal/hookconfig"
	"github.com/githooks-go/githooks/internal/planner"
)

func namedHook(name, shell string, modifies bool, dependsOn ...string) hookconfig.HookDefinition {
	return hookconfig.HookDefinition{
		Name:               name,
		Command:            hookconfig.HookCommand{Shell: shell},
		ModifiesRepository: modifies,
		ExecutionType:      hookconfig.Other,
		DependsOn:          dependsOn,
		SourcePath:         filepath.Join(os.TempDir(), "hooks.toml"),
	}
}

func testEnv() HookEnv {
	return HookEnv{RepoRoot: os.TempDir()}
}

// TestRunPlan_S4_DependencyFailureCascade verifies that when a hook
// fails, every downstream hook depending on it (directly or
// transitively) is skipped with reason "dependency failed" rather than
// executed, while independent hooks in the same or later phases still
// run.
func TestRunPlan_S4_DependencyFailureCascade(t *testing.T) {
	build := namedHook("build", "exit 1", false)
	test := namedHook("test", "echo should-not-run", false, "build")
	deploy := namedHook("deploy", "echo should-not-run", false, "test")
	lint := namedHook("lint", "echo ok", false)

	plan := &planner.ExecutionPlan{
		Phases: []planner.Phase{
			{Kind: planner.Sequential, Hooks: []planner.PlannedHook{{Hook: build}}},
			{Kind: planner.Sequential, Hooks: []planner.PlannedHook{{Hook: test}}},
			{Kind: planner.Sequential, Hooks: []planner.PlannedHook{{Hook: deploy}}},
			{Kind: planner.Parallel, Hooks: []planner.PlannedHook{{Hook: lint}}},
		},
	}

	report := RunPlan(context.Background(), plan, testEnv(), RunOptions{})

	byName := map[string]HookOutcome{}
	for _, o := range report.Outcomes {
		byName[o.Name] = o
	}

	if byName["build"].Succeeded() {
		t.Fatal("expected build to fail")
	}
	if !byName["test"].Skipped || byName["test"].SkipReason != "dependency failed" {
		t.Fatalf("expected test skipped for dependency failure, got %+v", byName["test"])
	}
	if !byName["deploy"].Skipped || byName["deploy"].SkipReason != "dependency failed" {
		t.Fatalf("expected deploy skipped for transitive dependency failure, got %+v", byName["deploy"])
	}
	if byName["lint"].Skipped {
		t.Fatal("lint has no dependency on build and must still run")
	}
	if !byName["lint"].Succeeded() {
		t.Fatalf("expected lint to succeed, got %+v", byName["lint"])
	}
	if report.Success() {
		t.Fatal("expected overall report failure")
	}
}

// TestRunPlan_S4_DependencyFailureCascade_ThroughParallelSkip verifies
// that a hook skipped inside a Parallel phase because its own
// dependency failed still propagates that failure to a later phase's
// hooks that depend on it, not just hooks skipped in a Sequential
// phase.
func TestRunPlan_S4_DependencyFailureCascade_ThroughParallelSkip(t *testing.T) {
	a := namedHook("a", "exit 1", false)
	b := namedHook("b", "echo should-not-run", false, "a")
	c := namedHook("c", "echo should-not-run", false, "b")

	plan := &planner.ExecutionPlan{
		Phases: []planner.Phase{
			{Kind: planner.Sequential, Hooks: []planner.PlannedHook{{Hook: a}}},
			{Kind: planner.Parallel, Hooks: []planner.PlannedHook{{Hook: b}}},
			{Kind: planner.Sequential, Hooks: []planner.PlannedHook{{Hook: c}}},
		},
	}

	report := RunPlan(context.Background(), plan, testEnv(), RunOptions{})

	byName := map[string]HookOutcome{}
	for _, o := range report.Outcomes {
		byName[o.Name] = o
	}

	if !byName["b"].Skipped || byName["b"].SkipReason != "dependency failed" {
		t.Fatalf("expected b skipped for dependency failure, got %+v", byName["b"])
	}
	if !byName["c"].Skipped || byName["c"].SkipReason != "dependency failed" {
		t.Fatalf("expected c skipped for transitive dependency failure through a Parallel-phase skip, got %+v", byName["c"])
	}
}

func TestRunPlan_DryRun_NoProcessSpawned(t *testing.T) {
	hook := namedHook("noisy", "exit 1", false)
	plan := &planner.ExecutionPlan{
		Phases: []planner.Phase{
			{Kind: planner.Sequential, Hooks: []planner.PlannedHook{{Hook: hook}}},
		},
	}

	report := RunPlan(context.Background(), plan, testEnv(), RunOptions{DryRun: true})

	if len(report.Outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(report.Outcomes))
	}
	o := report.Outcomes[0]
	if !o.DryRun {
		t.Fatal("expected DryRun outcome")
	}
	if !o.Succeeded() {
		t.Fatal("dry-run outcomes never fail the run")
	}
	if !strings.Contains(o.Command, "exit 1") {
		t.Fatalf("expected rendered command to be recorded, got %q", o.Command)
	}
}

func TestRunHook_PerFileArgvIncludesMatchedPaths(t *testing.T) {
	hook := hookconfig.HookDefinition{
		Name:          "ruff",
		Command:       hookconfig.HookCommand{Argv: []string{"ruff", "{HOOK_DIR_REL}"}},
		ExecutionType: hookconfig.PerFile,
		SourcePath:    "/repo/src/hooks.toml",
	}
	ph := planner.PlannedHook{Hook: hook, MatchedPaths: []string{"src/x.py", "src/y.py"}}

	o := runHook(context.Background(), ph, 0, HookEnv{RepoRoot: "/repo"}, RunOptions{DryRun: true})

	want := "ruff src src/x.py src/y.py"
	if o.Command != want {
		t.Fatalf("Command = %q, want %q", o.Command, want)
	}
}

func TestRunPlan_ParallelPhaseRunsAllMembers(t *testing.T) {
	a := namedHook("a", "true", false)
	b := namedHook("b", "true", false)
	c := namedHook("c", "true", false)

	plan := &planner.ExecutionPlan{
		Phases: []planner.Phase{
			{Kind: planner.Parallel, Hooks: []planner.PlannedHook{{Hook: a}, {Hook: b}, {Hook: c}}},
		},
	}

	report := RunPlan(context.Background(), plan, testEnv(), RunOptions{})
	if len(report.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(report.Outcomes))
	}
	if !report.Success() {
		t.Fatalf("expected success, got %+v", report.Outcomes)
	}
}

func TestRunPlan_SkippedHooksFromPlannerAreReported(t *testing.T) {
	plan := &planner.ExecutionPlan{
		Skipped: []planner.SkippedHook{{Name: "unused", Reason: "no matching files"}},
	}

	report := RunPlan(context.Background(), plan, testEnv(), RunOptions{})
	if len(report.Outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(report.Outcomes))
	}
	if !report.Outcomes[0].Skipped || report.Outcomes[0].SkipReason != "no matching files" {
		t.Fatalf("unexpected outcome: %+v", report.Outcomes[0])
	}
	if !report.Success() {
		t.Fatal("build-time skip must not fail the run")
	}
}

// ABOUTME: Types produced by the Planner: PlannedHook, Phase, and the final ExecutionPlan
// ABOUTME: Under parallel execution no Parallel phase contains a modifying hook; force-parallel does not keep this

package planner

import "github.com/githooks-go/githooks/internal/hookconfig"

// PhaseKind distinguishes concurrent from ordered execution.
type PhaseKind string

const (
	Parallel   PhaseKind = "parallel"
	Sequential PhaseKind = "sequential"
)

// PlannedHook pairs a hook definition with the paths that matched its
// file filter (empty when the hook has no files patterns or no path
// matched them; run_always hooks and every execution type still get
// their matches).
type PlannedHook struct {
	Hook         hookconfig.HookDefinition
	MatchedPaths []string
}

// Phase is a scheduled subset of hooks that run together.
type Phase struct {
	Kind  PhaseKind
	Hooks []PlannedHook
}

// SkippedHook records a hook the Planner dropped from the plan and why.
type SkippedHook struct {
	Name   string
	Reason string
}

// ExecutionPlan is the ordered list of phases the Executor runs, plus the
// hooks the Planner decided not to schedule at all.
type ExecutionPlan struct {
	Phases  []Phase
	Skipped []SkippedHook
}

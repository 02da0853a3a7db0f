// ABOUTME: Runs an ExecutionPlan's phases in order, cascading dependency failures at runtime
// ABOUTME: Parallel phases fan out via errgroup; Sequential phases run one hook at a time

package executor

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/githooks-go/githooks/internal/log"
	"github.com/githooks-go/githooks/internal/planner"
)

// RunPlan executes every phase of plan in order and returns the
// aggregated report. Once ctx is canceled, later phases are still walked
// but their hooks are not started: each is recorded as interrupted.
// Already-spawned hooks are always waited on so their outcomes are
// recorded.
func RunPlan(ctx context.Context, plan *planner.ExecutionPlan, env HookEnv, opts RunOptions) Report {
	report := Report{}
	for _, s := range plan.Skipped {
		report.Outcomes = append(report.Outcomes, HookOutcome{Name: s.Name, Skipped: true, SkipReason: s.Reason})
	}

	failed := make(map[string]bool)

	for i, phase := range plan.Phases {
		var outcomes []HookOutcome
		switch phase.Kind {
		case planner.Sequential:
			outcomes = runSequential(ctx, phase, i, env, opts, failed)
		case planner.Parallel:
			outcomes = runParallel(ctx, phase, i, env, opts, failed)
		}
		for _, o := range outcomes {
			if !o.Succeeded() {
				failed[o.Name] = true
			}
		}
		report.Outcomes = append(report.Outcomes, outcomes...)
	}

	return report
}

// dependencyFailed reports whether any of hook's dependencies is in the
// failed set, meaning this hook must be skipped at runtime rather than
// run. This is distinct from the Planner's build-time "no matching
// files" skip: it can only be known once earlier phases have actually
// executed.
func dependencyFailed(ph planner.PlannedHook, failed map[string]bool) bool {
	for _, dep := range ph.Hook.DependsOn {
		if failed[dep] {
			return true
		}
	}
	return false
}

func runSequential(ctx context.Context, phase planner.Phase, phaseIndex int, env HookEnv, opts RunOptions, failed map[string]bool) []HookOutcome {
	outcomes := make([]HookOutcome, 0, len(phase.Hooks))
	for _, ph := range phase.Hooks {
		if dependencyFailed(ph, failed) {
			outcomes = append(outcomes, HookOutcome{Name: ph.Hook.Name, Skipped: true, SkipReason: "dependency failed"})
			failed[ph.Hook.Name] = true
			continue
		}
		o := runHook(ctx, ph, phaseIndex, env, opts)
		outcomes = append(outcomes, o)
		if !o.Succeeded() {
			log.Warn("hook %q failed with exit code %d", ph.Hook.Name, o.ExitCode)
		}
	}
	return outcomes
}

func runParallel(ctx context.Context, phase planner.Phase, phaseIndex int, env HookEnv, opts RunOptions, failed map[string]bool) []HookOutcome {
	outcomes := make([]HookOutcome, len(phase.Hooks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(len(phase.Hooks), runtime.NumCPU()))

	for i, ph := range phase.Hooks {
		i, ph := i, ph
		if dependencyFailed(ph, failed) {
			outcomes[i] = HookOutcome{Name: ph.Hook.Name, Skipped: true, SkipReason: "dependency failed"}
			failed[ph.Hook.Name] = true
			continue
		}
		g.Go(func() error {
			outcomes[i] = runHook(gctx, ph, phaseIndex, env, opts)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// ABOUTME: Orchestrator: single entry point per verb, wiring Change Provider -> Resolver -> Planner -> Executor
// ABOUTME: Owns Change-Provider-mode selection per event and final report aggregation

package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/githooks-go/githooks/internal/change"
	"github.com/githooks-go/githooks/internal/executor"
	"github.com/githooks-go/githooks/internal/git"
	"github.com/githooks-go/githooks/internal/hookconfig"
	"github.com/githooks-go/githooks/internal/hookserrors"
	"github.com/githooks-go/githooks/internal/log"
	"github.com/githooks-go/githooks/internal/planner"
	"github.com/githooks-go/githooks/internal/resolver"
)

// pushFamily lists the git hook events whose changed set is a
// local...remote range rather than the working tree.
var pushFamily = map[string]bool{
	"pre-push":     true,
	"post-receive": true,
	"update":       true,
}

// RunFlags mirrors the run(event, flags) invocation surface: all_files,
// dry_run, git_args.
type RunFlags struct {
	AllFiles bool
	DryRun   bool
	GitArgs  []string
	// LocalRef/RemoteRef feed range-mode Change Provider calls for
	// push-family events; empty means "let the provider decide" (an
	// unknown remote yields an empty change set, per spec).
	LocalRef  string
	RemoteRef string
}

// LintFlags mirrors the lint(name, flags) invocation surface.
type LintFlags struct {
	DryRun bool
}

// ValidateFlags mirrors the validate(flags) invocation surface.
type ValidateFlags struct {
	TraceImports bool
	JSON         bool
}

// Orchestrator wires the pipeline components against one repository
// root for the lifetime of a single CLI invocation.
type Orchestrator struct {
	repoRoot string
	loader   *hookconfig.Loader
	change   *change.Provider
	resolver *resolver.Resolver
}

// New builds an Orchestrator rooted at repoRoot with an allow-list read
// once for the whole invocation.
func New(repoRoot string, strict bool) (*Orchestrator, error) {
	allowlist, err := hookconfig.LoadAllowlist()
	if err != nil {
		return nil, err
	}
	loader := hookconfig.NewLoader(repoRoot, allowlist, strict)
	return &Orchestrator{
		repoRoot: repoRoot,
		loader:   loader,
		change:   change.New(repoRoot),
		resolver: resolver.New(repoRoot, loader),
	}, nil
}

// Run drives Change Provider -> Resolver -> Planner -> Executor for one
// git event and returns the aggregated report.
func (o *Orchestrator) Run(ctx context.Context, event string, flags RunFlags) (executor.Report, error) {
	changed, err := o.changedSetFor(ctx, event, flags)
	if err != nil {
		return executor.Report{}, err
	}

	groups, err := o.resolver.ResolveForEvent(event, changed)
	if err != nil {
		return executor.Report{}, err
	}

	env, err := o.hookEnv(ctx)
	if err != nil {
		return executor.Report{}, err
	}

	var report executor.Report
	for _, g := range groups {
		plan, err := planner.Build(g.Config, event, g.Paths)
		if err != nil {
			return executor.Report{}, err
		}
		sub := executor.RunPlan(ctx, plan, env, executor.RunOptions{DryRun: flags.DryRun, GitArgs: flags.GitArgs})
		report.Outcomes = append(report.Outcomes, sub.Outcomes...)
	}

	return report, nil
}

// Lint drives Resolve-by-name against the lint Change Provider mode,
// enumerating non-ignored files under the current directory rather than
// a git diff.
func (o *Orchestrator) Lint(ctx context.Context, name string, flags LintFlags) (executor.Report, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return executor.Report{}, fmt.Errorf("%w: %v", hookserrors.ErrIO, err)
	}

	target, err := o.resolver.ResolveByName(cwd, name)
	if err != nil {
		return executor.Report{}, err
	}

	changed, err := o.change.EnumerateNonIgnored(ctx, cwd)
	if err != nil {
		return executor.Report{}, err
	}

	env, err := o.hookEnv(ctx)
	if err != nil {
		return executor.Report{}, err
	}

	plan, err := planner.Build(target.Config, target.Name, []string(changed))
	if err != nil {
		return executor.Report{}, err
	}

	return executor.RunPlan(ctx, plan, env, executor.RunOptions{DryRun: flags.DryRun}), nil
}

// Validate loads the root hooks.toml in strict mode and returns its
// diagnostics, failing with the first fatal ValidationError-class error
// encountered. When flags.TraceImports is set, the returned
// ImportRecords additionally list every import's path, inclusion
// order, and the names it contributed that a later import or the root
// file's own definitions overrode.
func (o *Orchestrator) Validate(flags ValidateFlags) ([]hookserrors.Diagnostic, []hookconfig.ImportRecord, error) {
	ec, err := o.loader.Load(filepath.Join(o.repoRoot, "hooks.toml"))
	if err != nil {
		return nil, nil, err
	}
	var trace []hookconfig.ImportRecord
	if flags.TraceImports {
		trace = o.loader.Trace()
	}
	return ec.Diagnostics, trace, nil
}

// EventNames returns the hook/group names defined by the root config,
// the set for which the installer contract expects shim scripts.
func (o *Orchestrator) EventNames() ([]string, error) {
	ec, err := o.loader.Load(filepath.Join(o.repoRoot, "hooks.toml"))
	if err != nil {
		return nil, err
	}
	return ec.Names(), nil
}

func (o *Orchestrator) changedSetFor(ctx context.Context, event string, flags RunFlags) ([]string, error) {
	if flags.AllFiles {
		set, err := o.change.EnumerateNonIgnored(ctx, o.repoRoot)
		if err != nil {
			return nil, err
		}
		return []string(set), nil
	}

	if pushFamily[event] {
		local, remote := flags.LocalRef, flags.RemoteRef
		if local == "" {
			local = "HEAD"
		}
		set, err := o.change.Range(ctx, local, remote)
		if err != nil {
			return nil, err
		}
		return []string(set), nil
	}

	set, err := o.change.WorkingTree(ctx)
	if err != nil {
		return nil, err
	}
	return []string(set), nil
}

func (o *Orchestrator) hookEnv(ctx context.Context) (executor.HookEnv, error) {
	info, err := o.change.Info()
	if err != nil {
		log.Debug("orchestrator: worktree info unavailable: %v", err)
		return executor.HookEnv{RepoRoot: o.repoRoot}, nil
	}
	return executor.HookEnv{
		RepoRoot:     o.repoRoot,
		IsWorktree:   info.IsWorktree,
		WorktreeName: info.Name,
		CommonDir:    info.CommonDir,
	}, nil
}

// DiscoverRepoRoot resolves the repository root from the current
// working directory, used by cmd/githooks before constructing an
// Orchestrator.
func DiscoverRepoRoot(dir string) (string, error) {
	return git.RepoRoot(dir)
}

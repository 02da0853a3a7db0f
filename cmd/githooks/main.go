// ABOUTME: CLI entry point for githooks: dispatches run/lint/validate to internal/orchestrator
// ABOUTME: Propagates SIGINT to live hook processes before exiting with the mapped status code

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mailru/easyjson"

	"github.com/githooks-go/githooks/internal/executor"
	"github.com/githooks-go/githooks/internal/hookserrors"
	githookslog "github.com/githooks-go/githooks/internal/log"
	"github.com/githooks-go/githooks/internal/orchestrator"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if os.Args[1] == "--version" || os.Args[1] == "version" {
		fmt.Printf("githooks %s (%s)\n", version, commit)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := dispatch(ctx, os.Args[1], os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "githooks: %v\n", err)
	}
	if ctx.Err() != nil {
		code = 130
	}
	os.Exit(code)
}

func dispatch(ctx context.Context, verb string, args []string) (int, error) {
	repoRoot, err := discoverRepoRootOrCwd()
	if err != nil {
		return 2, err
	}

	switch verb {
	case "run":
		return cmdRun(ctx, repoRoot, args)
	case "lint":
		return cmdLint(ctx, repoRoot, args)
	case "validate":
		return cmdValidate(repoRoot, args)
	default:
		usage()
		return 2, fmt.Errorf("unknown verb %q", verb)
	}
}

func cmdRun(ctx context.Context, repoRoot string, args []string) (int, error) {
	f := parseRunFlags(args)
	if f.event == "" {
		return 2, errors.New("run requires an event name")
	}

	orch, err := orchestrator.New(repoRoot, false)
	if err != nil {
		return 2, err
	}

	report, err := orch.Run(ctx, f.event, orchestrator.RunFlags{
		AllFiles:  f.allFiles,
		DryRun:    f.dryRun,
		GitArgs:   f.gitArgs,
		LocalRef:  f.localRef,
		RemoteRef: f.remoteRef,
	})
	if err != nil {
		return exitCodeForError(err), err
	}

	printReport(report)
	return exitCodeForReport(report), nil
}

func cmdLint(ctx context.Context, repoRoot string, args []string) (int, error) {
	f := parseLintFlags(args)
	if f.name == "" {
		return 2, errors.New("lint requires a hook or group name")
	}

	orch, err := orchestrator.New(repoRoot, false)
	if err != nil {
		return 2, err
	}

	report, err := orch.Lint(ctx, f.name, orchestrator.LintFlags{DryRun: f.dryRun})
	if err != nil {
		return exitCodeForError(err), err
	}

	printReport(report)
	return exitCodeForReport(report), nil
}

func cmdValidate(repoRoot string, args []string) (int, error) {
	f := parseValidateFlags(args)

	orch, err := orchestrator.New(repoRoot, true)
	if err != nil {
		return 2, err
	}

	diags, trace, err := orch.Validate(orchestrator.ValidateFlags{TraceImports: f.traceImports, JSON: f.json})
	if err != nil {
		return exitCodeForError(err), err
	}

	if f.json {
		out, err := easyjson.Marshal(validateJSONReport{Diagnostics: diags, Imports: trace})
		if err != nil {
			return 2, fmt.Errorf("%w: %v", hookserrors.ErrIO, err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return 0, nil
	}

	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	for _, rec := range trace {
		line := fmt.Sprintf("import[%d]: %s", rec.Order, rec.Path)
		if len(rec.OverriddenNames) > 0 {
			line += fmt.Sprintf(" (overrides: %s)", strings.Join(rec.OverriddenNames, ", "))
		}
		fmt.Fprintln(os.Stderr, line)
	}
	return 0, nil
}

func discoverRepoRootOrCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, err := orchestrator.DiscoverRepoRoot(cwd)
	if err != nil {
		return "", err
	}
	return root, nil
}

func printReport(report executor.Report) {
	for _, o := range report.Outcomes {
		if o.Skipped {
			githookslog.Info("%s: skipped (%s)", o.Name, o.SkipReason)
			continue
		}
		if o.DryRun {
			githookslog.Info("%s: dry-run: %s", o.Name, o.Command)
			continue
		}
		if o.Stdout != "" {
			fmt.Fprint(os.Stdout, o.Stdout)
		}
		if o.Stderr != "" {
			fmt.Fprint(os.Stderr, o.Stderr)
		}
		if !o.Succeeded() {
			githookslog.Error("%s: exit %d (%s)", o.Name, o.ExitCode, o.Duration())
		}
	}
}

func exitCodeForReport(report executor.Report) int {
	if report.Success() {
		return 0
	}
	return 1
}

// exitCodeForError maps a fatal error to the Orchestrator's exit-code
// contract. Every error surfaced before the Executor runs is a
// configuration or usage error in spec.md §6's taxonomy (parse
// failures, rejected imports, cycles, name-not-found, or an external
// git/IO failure that aborted the run before any hook started). Errors
// that don't wrap a known hookserrors sentinel (flag parsing, an
// unexpected internal error) still fall back to 2.
func exitCodeForError(err error) int {
	kind, ok := hookserrors.KindForError(err)
	if !ok {
		return 2
	}
	return hookserrors.ExitCode([]hookserrors.Kind{kind})
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  githooks run <event> [--all-files] [--dry-run] [-- <git-args>]
  githooks lint <name> [--dry-run]
  githooks validate [--trace-imports] [--json]`)
}

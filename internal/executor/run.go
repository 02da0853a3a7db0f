// ABOUTME: Runs one hook: template expansion, env/workdir resolution, process spawn, output capture
// ABOUTME: Grounded on the teacher's hooks/command.go sh -c + process-group pattern, without its fixed timeout

package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/githooks-go/githooks/internal/hookconfig"
	"github.com/githooks-go/githooks/internal/hookserrors"
	"github.com/githooks-go/githooks/internal/log"
	"github.com/githooks-go/githooks/internal/planner"
	"github.com/githooks-go/githooks/internal/template"
)

// RunOptions carries invocation-wide flags into per-hook execution.
type RunOptions struct {
	DryRun  bool
	GitArgs []string
}

// HookEnv describes the ambient values every hook invocation needs to
// build its template.Context, independent of any one hook.
type HookEnv struct {
	RepoRoot     string
	IsWorktree   bool
	WorktreeName string
	CommonDir    string
}

// runHook executes a single planned hook and returns its outcome.
// phaseIndex is recorded for report ordering only; it does not affect
// execution.
func runHook(ctx context.Context, ph planner.PlannedHook, phaseIndex int, env HookEnv, opts RunOptions) HookOutcome {
	hook := ph.Hook
	hookDir := filepath.Dir(hook.SourcePath)

	tmplCtx := template.NewContext(hookDir, hookDir, env.RepoRoot, env.IsWorktree, env.WorktreeName, env.CommonDir, ph.MatchedPaths)
	defer tmplCtx.Close()

	outcome := HookOutcome{
		Name:         hook.Name,
		ConfigPath:   hook.SourcePath,
		PhaseIndex:   phaseIndex,
		MatchedPaths: len(ph.MatchedPaths),
	}

	expandedWorkdir, err := template.Expand(tmplCtx, hook.Workdir)
	if err != nil {
		outcome.Err = err
		outcome.ExitCode = 2
		return outcome
	}
	workdir := resolveWorkdir(hook, hookDir, env.RepoRoot, expandedWorkdir)
	tmplCtx.WorkingDir = workdir
	outcome.Workdir = workdir

	expandedCmd, err := expandCommand(tmplCtx, hook.Command)
	if err != nil {
		outcome.Err = err
		outcome.ExitCode = 2
		return outcome
	}

	expandedEnv, err := template.ExpandEnv(tmplCtx, hook.Env)
	if err != nil {
		outcome.Err = err
		outcome.ExitCode = 2
		return outcome
	}

	spec := buildSpawnSpec(hook.ExecutionType, expandedCmd, ph.MatchedPaths, opts.GitArgs)
	outcome.Command = spec.String()

	if opts.DryRun {
		outcome.DryRun = true
		return outcome
	}

	childEnv := buildChildEnv(expandedEnv, tmplCtx)

	outcome.Start = time.Now()
	exitCode, stdout, stderr, interrupted, runErr := spawn(ctx, spec, workdir, childEnv)
	outcome.End = time.Now()
	outcome.ExitCode = exitCode
	outcome.Stdout = stdout
	outcome.Stderr = stderr
	outcome.Interrupted = interrupted
	if runErr != nil {
		log.Debug("hook %q: %v", hook.Name, runErr)
	}

	return outcome
}

// expandCommand expands every argv element or the shell string, matching
// spec.md's "expansion targets: every element of an argv command (or the
// single command string)".
func expandCommand(c *template.Context, cmd hookconfig.HookCommand) (hookconfig.HookCommand, error) {
	if cmd.IsShell() {
		expanded, err := template.Expand(c, cmd.Shell)
		if err != nil {
			return hookconfig.HookCommand{}, err
		}
		return hookconfig.HookCommand{Shell: expanded}, nil
	}
	argv, err := template.ExpandArgv(c, cmd.Argv)
	if err != nil {
		return hookconfig.HookCommand{}, err
	}
	return hookconfig.HookCommand{Argv: argv}, nil
}

// buildChildEnv layers: inherited process environment, then hook.Env
// (already expanded), then the always-injected CHANGED_FILES trio.
func buildChildEnv(expandedEnv map[string]string, tmplCtx *template.Context) []string {
	env := os.Environ()
	for k, v := range expandedEnv {
		env = append(env, k+"="+v)
	}

	changedFiles, _ := template.Expand(tmplCtx, "{CHANGED_FILES}")
	changedFilesList, _ := template.Expand(tmplCtx, "{CHANGED_FILES_LIST}")
	changedFilesFile, _ := template.Expand(tmplCtx, "{CHANGED_FILES_FILE}")

	env = append(env,
		"CHANGED_FILES="+changedFiles,
		"CHANGED_FILES_LIST="+changedFilesList,
		"CHANGED_FILES_FILE="+changedFilesFile,
	)
	return env
}

// spawn runs one child process to completion, capturing stdout/stderr
// separately so a caller can present them without interleaving. Returns
// interrupted=true if ctx was canceled before the child exited.
func spawn(ctx context.Context, spec spawnSpec, workdir string, env []string) (exitCode int, stdout, stderr string, interrupted bool, err error) {
	var cmd *exec.Cmd
	if spec.Shell != "" {
		cmd = exec.CommandContext(ctx, "sh", "-c", spec.Shell)
	} else {
		if len(spec.Argv) == 0 {
			return 2, "", "", false, hookserrors.ErrValidationError
		}
		cmd = exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
	}
	cmd.Dir = workdir
	cmd.Env = env
	setProcGroup(cmd)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	// A canceled context means the orchestrator caught a signal (or the
	// caller gave up); propagate SIGINT to the whole process group rather
	// than killing it outright, per the interruption contract in
	// spec.md §5.
	cmd.Cancel = func() error {
		return interruptProcGroup(cmd)
	}

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return -1, outBuf.String(), errBuf.String(), true, ctx.Err()
	}

	code := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if runErr != nil {
		return -1, outBuf.String(), errBuf.String(), false, runErr
	}

	return code, outBuf.String(), errBuf.String(), false, nil
}

// ABOUTME: Read-only git worktree/repository queries: root, common dir, worktree detection
// ABOUTME: Wraps git CLI commands with exec.CommandContext and a bounded timeout

package git

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const gitTimeout = 30 * time.Second

// WorktreeInfo holds metadata about a git worktree, as reported by
// `git worktree list --porcelain`.
type WorktreeInfo struct {
	Path   string // absolute path to worktree
	Branch string // branch name
	Head   string // HEAD commit hash (full 40-char hex)
	Bare   bool   // true if bare
	Main   bool   // true if main working tree
}

// List returns all worktrees for the repo at repoDir by parsing
// `git worktree list --porcelain` output.
func List(repoDir string) ([]WorktreeInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	out, err := gitCmd(ctx, repoDir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git worktree list: %w: %s", err, out)
	}

	return parsePorcelain(out)
}

// IsWorktree reports whether dir is inside a git working tree.
func IsWorktree(dir string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	out, err := gitCmd(ctx, dir, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) == "true"
}

// RepoRoot returns the repository root for the given directory
// via `git rev-parse --show-toplevel`.
func RepoRoot(dir string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	out, err := gitCmd(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("git repo root: %w: %s", err, out)
	}
	return strings.TrimSpace(out), nil
}

// CommonDir returns the shared git directory across worktrees, via
// `git rev-parse --git-common-dir`, resolved to an absolute path.
func CommonDir(dir string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	out, err := gitCmd(ctx, dir, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("git common dir: %w: %s", err, out)
	}
	common := strings.TrimSpace(out)
	if !filepath.IsAbs(common) {
		common = filepath.Join(dir, common)
	}
	return filepath.Clean(common), nil
}

// CurrentWorktreeName returns the name of the worktree containing dir, or
// "" if dir is the repository's main working tree (or not a worktree at
// all). The name is the base name of the worktree's path.
func CurrentWorktreeName(dir string) (string, error) {
	root, err := RepoRoot(dir)
	if err != nil {
		return "", err
	}

	worktrees, err := List(root)
	if err != nil {
		return "", err
	}

	for _, wt := range worktrees {
		resolvedWt, _ := filepath.EvalSymlinks(wt.Path)
		resolvedRoot, _ := filepath.EvalSymlinks(root)
		if resolvedWt == resolvedRoot {
			if wt.Main {
				return "", nil
			}
			return filepath.Base(wt.Path), nil
		}
	}

	return "", nil
}

// Run executes an allow-listed, read-only git subcommand in dir and
// returns its combined output. Shared by the change provider so every
// git invocation in this repo goes through the same sanitizeGitArgs
// validator, regardless of caller package.
func Run(ctx context.Context, dir string, args ...string) (string, error) {
	return gitCmd(ctx, dir, args...)
}

// gitCmd runs a git command with the given context and working directory.
// Returns combined stdout as a string.
func gitCmd(ctx context.Context, dir string, args ...string) (string, error) {
	sanitizedArgs, err := sanitizeGitArgs(args)
	if err != nil {
		return "", fmt.Errorf("git command validation failed: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", sanitizedArgs...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// parsePorcelain parses the output of `git worktree list --porcelain` into
// a slice of WorktreeInfo. The format is:
//
//	worktree /path/to/main
//	HEAD abc1234
//	branch refs/heads/main
//
//	worktree /path/to/feature
//	HEAD def5678
//	branch refs/heads/feature
func parsePorcelain(output string) ([]WorktreeInfo, error) {
	var worktrees []WorktreeInfo
	var current *WorktreeInfo
	isFirst := true

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "worktree "):
			if current != nil {
				worktrees = append(worktrees, *current)
			}
			current = &WorktreeInfo{
				Path: strings.TrimPrefix(line, "worktree "),
				Main: isFirst,
			}
			isFirst = false

		case strings.HasPrefix(line, "HEAD "):
			if current != nil {
				current.Head = strings.TrimPrefix(line, "HEAD ")
			}

		case strings.HasPrefix(line, "branch "):
			if current != nil {
				ref := strings.TrimPrefix(line, "branch ")
				current.Branch = strings.TrimPrefix(ref, "refs/heads/")
			}

		case line == "bare":
			if current != nil {
				current.Bare = true
			}
		}
	}

	if current != nil {
		worktrees = append(worktrees, *current)
	}

	return worktrees, scanner.Err()
}

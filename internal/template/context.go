// ABOUTME: Per-hook-invocation context feeding the {NAME} template dispatch table
// ABOUTME: Owns the CHANGED_FILES_FILE temp file lifetime, unlinked by Close

package template

import (
	"os"
	"path/filepath"
	"strings"
)

// Context carries every value a hook invocation's template variables may
// reference. One Context is built per hook right before argv/env/workdir
// expansion and closed immediately after the child process exits.
type Context struct {
	HookDir      string
	WorkingDir   string
	RepoRoot     string
	HomeDir      string
	Path         string
	IsWorktree   bool
	WorktreeName string
	CommonDir    string
	ChangedFiles []string

	changedFilesFile     string
	changedFilesFileOnce bool
}

// NewContext builds a Context for one hook invocation.
func NewContext(hookDir, workingDir, repoRoot string, isWorktree bool, worktreeName, commonDir string, changedFiles []string) *Context {
	home, _ := os.UserHomeDir()
	return &Context{
		HookDir:      hookDir,
		WorkingDir:   workingDir,
		RepoRoot:     repoRoot,
		HomeDir:      home,
		Path:         os.Getenv("PATH"),
		IsWorktree:   isWorktree,
		WorktreeName: worktreeName,
		CommonDir:    commonDir,
		ChangedFiles: changedFiles,
	}
}

// changedFilesFilePath lazily creates the temp file backing
// CHANGED_FILES_FILE and returns its absolute path. Created at most once
// per Context.
func (c *Context) changedFilesFilePath() (string, error) {
	if c.changedFilesFileOnce {
		return c.changedFilesFile, nil
	}

	f, err := os.CreateTemp("", "githooks-changed-files-*")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if len(c.ChangedFiles) > 0 {
		if _, err := f.WriteString(strings.Join(c.ChangedFiles, "\n") + "\n"); err != nil {
			return "", err
		}
	}

	c.changedFilesFile = f.Name()
	c.changedFilesFileOnce = true
	return c.changedFilesFile, nil
}

// Close unlinks the CHANGED_FILES_FILE temp file, if one was created.
// Best-effort: an error here does not affect the hook's already-observed
// exit status.
func (c *Context) Close() error {
	if !c.changedFilesFileOnce || c.changedFilesFile == "" {
		return nil
	}
	err := os.Remove(c.changedFilesFile)
	c.changedFilesFile = ""
	return err
}

func relOrEmpty(base, target string) string {
	if base == "" || target == "" {
		return ""
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}

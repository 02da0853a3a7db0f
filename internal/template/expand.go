// ABOUTME: Closed {NAME} placeholder dispatch table; unrecognized names are a hard error at expansion time
// ABOUTME: Single-pass regex substitution, so text produced by one expansion is never re-scanned

package template

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/githooks-go/githooks/internal/hookserrors"
)

var placeholderRe = regexp.MustCompile(`\{([A-Z_]+)\}`)

// variables is the closed set of recognized template names. Each
// resolver reads only its Context; CHANGED_FILES_FILE additionally
// creates the backing temp file on first use.
var variables = map[string]func(c *Context) (string, error){
	"HOOK_DIR": func(c *Context) (string, error) { return c.HookDir, nil },
	"WORKING_DIR": func(c *Context) (string, error) { return c.WorkingDir, nil },
	"REPO_ROOT": func(c *Context) (string, error) { return c.RepoRoot, nil },
	"HOOK_DIR_REL": func(c *Context) (string, error) {
		return relOrEmpty(c.RepoRoot, c.HookDir), nil
	},
	"WORKING_DIR_REL": func(c *Context) (string, error) {
		return relOrEmpty(c.RepoRoot, c.WorkingDir), nil
	},
	"PROJECT_NAME": func(c *Context) (string, error) { return filepath.Base(c.HookDir), nil },
	"HOME_DIR":     func(c *Context) (string, error) { return c.HomeDir, nil },
	"PATH":         func(c *Context) (string, error) { return c.Path, nil },
	"IS_WORKTREE": func(c *Context) (string, error) {
		return strconv.FormatBool(c.IsWorktree), nil
	},
	"WORKTREE_NAME": func(c *Context) (string, error) { return c.WorktreeName, nil },
	"COMMON_DIR":    func(c *Context) (string, error) { return c.CommonDir, nil },
	"CHANGED_FILES": func(c *Context) (string, error) {
		return strings.Join(c.ChangedFiles, " "), nil
	},
	"CHANGED_FILES_LIST": func(c *Context) (string, error) {
		return strings.Join(c.ChangedFiles, "\n"), nil
	},
	"CHANGED_FILES_FILE": func(c *Context) (string, error) {
		return c.changedFilesFilePath()
	},
}

// Expand replaces every {NAME} placeholder in s using c. An unrecognized
// name is a hard error, not a silent pass-through or an ambient
// environment leak — this is the closed variable set redesign that
// replaces the original engine's open ${VAR} lookup.
func Expand(c *Context, s string) (string, error) {
	var firstErr error
	result := placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := match[1 : len(match)-1]
		resolver, ok := variables[name]
		if !ok {
			firstErr = fmt.Errorf("%w: unrecognized template variable %q", hookserrors.ErrValidationError, name)
			return match
		}
		value, err := resolver(c)
		if err != nil {
			firstErr = fmt.Errorf("expand %q: %w", name, err)
			return match
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// ExpandArgv expands every element of an argv command.
func ExpandArgv(c *Context, argv []string) ([]string, error) {
	out := make([]string, len(argv))
	for i, a := range argv {
		expanded, err := Expand(c, a)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}

// ExpandEnv expands every value in an env map (keys are left as-is).
func ExpandEnv(c *Context, env map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(env))
	for k, v := range env {
		expanded, err := Expand(c, v)
		if err != nil {
			return nil, fmt.Errorf("env %q: %w", k, err)
		}
		out[k] = expanded
	}
	return out, nil
}

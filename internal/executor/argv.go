// ABOUTME: Builds the spawned argv (or shell command line) per hook execution_type
// ABOUTME: per-file appends matched paths and pass-through git args; in-place/other never see paths as argv

package executor

import (
	"fmt"
	"strings"

	"github.com/githooks-go/githooks/internal/hookconfig"
)

// spawnSpec is the fully-resolved shape of a process about to be
// spawned: either a shell line (run via "sh -c") or a direct argv.
type spawnSpec struct {
	Shell string
	Argv  []string
}

// buildSpawnSpec constructs the argv/shell line for hook given its
// already-template-expanded command, the matched paths, and any
// pass-through git arguments (e.g. for commit-msg, which receives a
// filename argument from git itself).
func buildSpawnSpec(execType hookconfig.ExecutionType, cmd hookconfig.HookCommand, matchedPaths, gitArgs []string) spawnSpec {
	switch execType {
	case hookconfig.InPlace:
		return appendTrailing(cmd, gitArgs)
	case hookconfig.Other:
		return appendTrailing(cmd, nil)
	default: // PerFile
		return appendTrailing(cmd, append(append([]string{}, matchedPaths...), gitArgs...))
	}
}

// appendTrailing appends trailing to cmd's argv form, or to a shell
// command line as additional shell-quoted words.
func appendTrailing(cmd hookconfig.HookCommand, trailing []string) spawnSpec {
	if cmd.IsShell() {
		if len(trailing) == 0 {
			return spawnSpec{Shell: cmd.Shell}
		}
		quoted := make([]string, len(trailing))
		for i, t := range trailing {
			quoted[i] = shellQuote(t)
		}
		return spawnSpec{Shell: cmd.Shell + " " + strings.Join(quoted, " ")}
	}

	argv := make([]string, 0, len(cmd.Argv)+len(trailing))
	argv = append(argv, cmd.Argv...)
	argv = append(argv, trailing...)
	return spawnSpec{Argv: argv}
}

// shellQuote wraps s in single quotes for safe inclusion in a "sh -c"
// command line, escaping any embedded single quote.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// String renders the spec for dry-run output and diagnostics.
func (s spawnSpec) String() string {
	if s.Shell != "" {
		return fmt.Sprintf("sh -c %s", shellQuote(s.Shell))
	}
	return strings.Join(s.Argv, " ")
}

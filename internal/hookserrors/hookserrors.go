// ABOUTME: Sentinel error kinds shared across the config/change/resolver/planner/executor pipeline
// ABOUTME: Wrapped via fmt.Errorf("...: %w", ErrX) so callers can errors.Is/As at any layer

package hookserrors

import (
	"errors"
	"strconv"
)

// Sentinel error kinds. Fatal errors returned by the core wrap one of
// these so cmd/githooks can map them to an exit code without inspecting
// message text; an error that wraps none of them (for example a failed
// read of a config file) is mapped to exit code 2.
var (
	// ErrParseError covers malformed TOML and schema violations.
	ErrParseError = errors.New("parse error")

	// ErrImportPathRejected covers an import that escapes the repository
	// root and is not under the allow-list.
	ErrImportPathRejected = errors.New("import path rejected")

	// ErrImportFileMissing covers an imported path that does not exist.
	ErrImportFileMissing = errors.New("import file missing")

	// ErrValidationError covers a config that fails strict validation.
	ErrValidationError = errors.New("validation error")

	// ErrCycleInGroup covers a group whose includes form a cycle.
	ErrCycleInGroup = errors.New("cycle in group")

	// ErrCycleInDependencies covers a depends_on graph with a cycle.
	ErrCycleInDependencies = errors.New("cycle in dependencies")

	// ErrNameNotFound covers a resolver lookup for an event or target name
	// that has no definition anywhere up to the repository root.
	ErrNameNotFound = errors.New("name not found")

	// ErrGitCommandFailed covers a git subprocess invocation that exited
	// non-zero or could not be started.
	ErrGitCommandFailed = errors.New("git command failed")

	// ErrNotARepository covers an invocation outside any git working tree.
	ErrNotARepository = errors.New("not a repository")

	// ErrIO covers filesystem failures unrelated to git itself.
	ErrIO = errors.New("io error")
)

// Kind identifies a diagnostic's error class independent of its message,
// for machine-readable output (validate --json) and exit-code mapping.
type Kind string

const (
	KindParseError          Kind = "ParseError"
	KindImportPathRejected  Kind = "ImportPathRejected"
	KindImportFileMissing   Kind = "ImportFileMissing"
	KindValidationError     Kind = "ValidationError"
	KindValidationWarning   Kind = "ValidationWarning"
	KindCycleInGroup        Kind = "CycleInGroup"
	KindCycleInDependencies Kind = "CycleInDependencies"
	KindCycleSkipped        Kind = "CycleSkipped"
	KindNameNotFound        Kind = "NameNotFound"
	KindGitCommandFailed    Kind = "GitCommandFailed"
	KindNotARepository      Kind = "NotARepository"
	KindIoError             Kind = "IoError"
	KindHookExecutionFailed Kind = "HookExecutionFailed"
	KindHookSkipped         Kind = "HookSkipped"
	KindUnusedImport        Kind = "UnusedImport"
	KindOverride            Kind = "Override"
)

// Severity buckets a Diagnostic for user-visible output: fatal errors abort
// the run, warnings and informationals are reported alongside a successful
// or hook-driven outcome.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// Diagnostic is a machine-readable record of one thing the core noticed:
// a fatal error, a validation warning, or an informational note (a
// skipped import cycle, an unused import, a name override).
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Path     string // config file path this diagnostic concerns, if any
	Line     int    // 1-based line number, 0 if unknown
}

func (d *Diagnostic) Error() string {
	if d.Path == "" {
		return d.Message
	}
	if d.Line > 0 {
		return d.Path + ":" + strconv.Itoa(d.Line) + ": " + d.Message
	}
	return d.Path + ": " + d.Message
}

// ExitCode maps a diagnostic's kind to the Orchestrator's exit-code
// contract with its shell caller: 0 success, 1 hook failure, 2
// configuration/usage error, 130 signal interruption. No Kind maps to
// 130: ExitCode returns only 0, 1 or 2, and cmd/githooks sets 130 itself
// when a signal was received.
func ExitCode(kinds []Kind) int {
	hasHookFailure := false
	for _, k := range kinds {
		switch k {
		case KindParseError, KindImportPathRejected, KindImportFileMissing,
			KindValidationError, KindCycleInGroup, KindCycleInDependencies,
			KindNameNotFound, KindGitCommandFailed, KindNotARepository, KindIoError:
			return 2
		case KindHookExecutionFailed:
			hasHookFailure = true
		}
	}
	if hasHookFailure {
		return 1
	}
	return 0
}

// KindForError maps a fatal error returned by the core to its Kind by
// walking the sentinel chain with errors.Is, so cmd/githooks can call
// ExitCode without inspecting message text. Returns ok=false if err
// wraps none of the sentinels above.
func KindForError(err error) (kind Kind, ok bool) {
	switch {
	case errors.Is(err, ErrParseError):
		return KindParseError, true
	case errors.Is(err, ErrImportPathRejected):
		return KindImportPathRejected, true
	case errors.Is(err, ErrImportFileMissing):
		return KindImportFileMissing, true
	case errors.Is(err, ErrValidationError):
		return KindValidationError, true
	case errors.Is(err, ErrCycleInGroup):
		return KindCycleInGroup, true
	case errors.Is(err, ErrCycleInDependencies):
		return KindCycleInDependencies, true
	case errors.Is(err, ErrNameNotFound):
		return KindNameNotFound, true
	case errors.Is(err, ErrGitCommandFailed):
		return KindGitCommandFailed, true
	case errors.Is(err, ErrNotARepository):
		return KindNotARepository, true
	case errors.Is(err, ErrIO):
		return KindIoError, true
	default:
		return "", false
	}
}

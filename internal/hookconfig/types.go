// ABOUTME: In-memory representation of a hooks.toml file and its merged EffectiveConfig
// ABOUTME: HookCommand accepts either a shell string or an argv list via a custom TOML decoder

package hookconfig

import (
	"fmt"

	"github.com/githooks-go/githooks/internal/hookserrors"
)

// ExecutionType controls how matched files are surfaced to a hook's process.
type ExecutionType string

const (
	// PerFile appends matched files as trailing argv. Default.
	PerFile ExecutionType = "per-file"
	// InPlace runs once in the config directory with no file args.
	InPlace ExecutionType = "in-place"
	// Other surfaces files only via template variables.
	Other ExecutionType = "other"
)

// HookCommand is either a single shell string (run via "sh -c") or an argv
// list (exec'd directly, no shell). Exactly one of Shell/Argv is set.
type HookCommand struct {
	Shell string
	Argv  []string
}

// IsShell reports whether the command is a shell string rather than argv.
func (c HookCommand) IsShell() bool {
	return c.Shell != "" && c.Argv == nil
}

// IsEmpty reports whether the command carries neither a shell string nor
// argv entries.
func (c HookCommand) IsEmpty() bool {
	return c.Shell == "" && len(c.Argv) == 0
}

// commandFromTOML converts the raw decoded value of a hook's `command` key
// (a bare string or an array of strings, per go-toml/v2's generic decoding
// into `any`) into a HookCommand.
func commandFromTOML(value any) (HookCommand, error) {
	var c HookCommand
	switch v := value.(type) {
	case string:
		c.Shell = v
		c.Argv = nil
		return c, nil
	case []any:
		argv := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return HookCommand{}, fmt.Errorf("command array elements must be strings, got %T", elem)
			}
			argv = append(argv, s)
		}
		c.Argv = argv
		c.Shell = ""
		return c, nil
	default:
		return HookCommand{}, fmt.Errorf("command must be a string or an array of strings, got %T", value)
	}
}

// HookDefinition is a named unit of execution.
type HookDefinition struct {
	Name               string
	Command            HookCommand
	Description        string
	ModifiesRepository bool
	ExecutionType      ExecutionType
	Workdir            string
	RunAtRoot          bool
	Env                map[string]string
	Files              []string
	DependsOn          []string
	RunAlways          bool

	// ModifiesRepositorySet records whether the TOML source set this field
	// explicitly, so the loader can emit the missing-field validation
	// warning spec.md §4.1 requires without conflating it with an
	// explicit modifies_repository = false.
	ModifiesRepositorySet bool

	// SourcePath is the canonical path of the hooks.toml table that
	// defined this hook, used for HOOK_DIR and diagnostics.
	SourcePath string
}

// GroupExecution controls how a group's members are scheduled.
type GroupExecution string

const (
	Sequential    GroupExecution = "sequential"
	Parallel      GroupExecution = "parallel"
	ForceParallel GroupExecution = "force-parallel"
)

// GroupDefinition composes hooks and other groups.
type GroupDefinition struct {
	Name       string
	Includes   []string
	Execution  GroupExecution
	SourcePath string
}

// rawHook is the TOML wire shape of a [hooks.<name>] table.
type rawHook struct {
	Command             any               `toml:"command"`
	Description         string            `toml:"description"`
	ModifiesRepository  *bool             `toml:"modifies_repository"`
	ExecutionType       string            `toml:"execution_type"`
	Workdir             string            `toml:"workdir"`
	RunAtRoot           bool              `toml:"run_at_root"`
	Env                 map[string]string `toml:"env"`
	Files               []string          `toml:"files"`
	DependsOn           []string          `toml:"depends_on"`
	RunAlways           bool              `toml:"run_always"`
}

// rawGroup is the TOML wire shape of a [groups.<name>] table.
type rawGroup struct {
	Includes  []string `toml:"includes"`
	Execution string   `toml:"execution"`
	Parallel  bool     `toml:"parallel"` // deprecated: honored as execution="parallel" when true
}

// rawConfigFile is the top-level TOML wire shape. Parse decodes it
// leniently; unknown top-level keys are rejected by a separate strict
// decode in Parse that leaves the hook and group tables unchecked.
type rawConfigFile struct {
	Imports []string            `toml:"imports"`
	Hooks   map[string]rawHook  `toml:"hooks"`
	Groups  map[string]rawGroup `toml:"groups"`
}

// ConfigFile is one parsed hooks.toml, before import expansion.
type ConfigFile struct {
	Path    string // canonical absolute path
	Imports []string
	Hooks   map[string]HookDefinition
	Groups  map[string]GroupDefinition
}

// EffectiveConfig is the merge of a root ConfigFile with its transitively
// imported files. Read-only once built; safe to share across the run's
// per-path-canonical cache.
type EffectiveConfig struct {
	// RootPath is the canonical path of the config file this
	// EffectiveConfig was built from.
	RootPath string
	Dir      string // directory containing RootPath
	Hooks    map[string]HookDefinition
	Groups   map[string]GroupDefinition

	Diagnostics []hookserrors.Diagnostic
}

// Defines reports whether name is a hook or group in this EffectiveConfig.
func (ec *EffectiveConfig) Defines(name string) bool {
	if ec == nil {
		return false
	}
	if _, ok := ec.Hooks[name]; ok {
		return true
	}
	_, ok := ec.Groups[name]
	return ok
}

// Names returns every hook and group name defined, for fuzzy suggestions.
func (ec *EffectiveConfig) Names() []string {
	names := make([]string, 0, len(ec.Hooks)+len(ec.Groups))
	for n := range ec.Hooks {
		names = append(names, n)
	}
	for n := range ec.Groups {
		names = append(names, n)
	}
	return names
}

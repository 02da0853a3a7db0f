// ABOUTME: Parses one hooks.toml into a ConfigFile with strict top-level and lenient nested validation
// ABOUTME: Strict pass rejects unknown top-level keys; lenient pass diffs hook/group keys for warnings

package hookconfig

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/githooks-go/githooks/internal/hookserrors"
)

var knownHookKeys = map[string]bool{
	"command": true, "description": true, "modifies_repository": true,
	"execution_type": true, "workdir": true, "run_at_root": true,
	"env": true, "files": true, "depends_on": true, "run_always": true,
}

var knownGroupKeys = map[string]bool{
	"includes": true, "execution": true, "parallel": true,
}

var identifierRe = regexp.MustCompile(`^\S+$`)

// invalidName reports whether name is unsuitable as a hook/group name:
// containing whitespace or a path separator.
func invalidName(name string) bool {
	if name == "" {
		return true
	}
	if strings.ContainsAny(name, "/\\") {
		return true
	}
	return !identifierRe.MatchString(name)
}

// ParseFile parses the TOML file at path into a ConfigFile. strict, when
// true (the `validate` verb's mode), elevates a missing
// modifies_repository to a hard error instead of a warning.
func ParseFile(path string, strict bool) (*ConfigFile, []hookserrors.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, data, strict)
}

// Parse parses raw TOML bytes attributed to path (used for diagnostics)
// into a ConfigFile.
func Parse(path string, data []byte, strict bool) (*ConfigFile, []hookserrors.Diagnostic, error) {
	// Strict pass: only the top level is checked for unknown keys. The
	// hooks and groups tables decode into generic maps here, so keys
	// nested inside them never trip DisallowUnknownFields.
	var top struct {
		Imports []string       `toml:"imports"`
		Hooks   map[string]any `toml:"hooks"`
		Groups  map[string]any `toml:"groups"`
	}
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&top); err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", path, hookserrors.ErrParseError, err)
	}

	var raw rawConfigFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", path, hookserrors.ErrParseError, err)
	}

	// Lenient pass to diff nested key sets for hooks/groups tables and
	// surface unrecognized keys as warnings rather than errors.
	var lenient struct {
		Hooks  map[string]map[string]any `toml:"hooks"`
		Groups map[string]map[string]any `toml:"groups"`
	}
	if err := toml.Unmarshal(data, &lenient); err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", path, hookserrors.ErrParseError, err)
	}

	var diags []hookserrors.Diagnostic

	hooks := make(map[string]HookDefinition, len(raw.Hooks))
	for name, rh := range raw.Hooks {
		if invalidName(name) {
			return nil, nil, fmt.Errorf("%s: %w: hook name %q contains whitespace or a path separator",
				path, hookserrors.ErrValidationError, name)
		}
		var command HookCommand
		if rh.Command != nil {
			var err error
			command, err = commandFromTOML(rh.Command)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w: hook %q: %v",
					path, hookserrors.ErrValidationError, name, err)
			}
		}
		if command.IsEmpty() {
			return nil, nil, fmt.Errorf("%s: %w: hook %q has an empty command",
				path, hookserrors.ErrValidationError, name)
		}

		for key := range lenient.Hooks[name] {
			if !knownHookKeys[key] {
				diags = append(diags, hookserrors.Diagnostic{
					Kind: hookserrors.KindValidationWarning, Severity: hookserrors.SeverityWarning,
					Message: fmt.Sprintf("hook %q: unrecognized key %q", name, key),
					Path:    path,
				})
			}
		}

		execType := ExecutionType(rh.ExecutionType)
		if execType == "" {
			execType = PerFile
		}
		if execType != PerFile && execType != InPlace && execType != Other {
			return nil, nil, fmt.Errorf("%s: %w: hook %q has invalid execution_type %q",
				path, hookserrors.ErrValidationError, name, rh.ExecutionType)
		}

		modifies := false
		modifiesSet := rh.ModifiesRepository != nil
		if modifiesSet {
			modifies = *rh.ModifiesRepository
		} else if strict {
			return nil, nil, fmt.Errorf("%s: %w: hook %q is missing required modifies_repository",
				path, hookserrors.ErrValidationError, name)
		} else {
			diags = append(diags, hookserrors.Diagnostic{
				Kind: hookserrors.KindValidationWarning, Severity: hookserrors.SeverityWarning,
				Message: fmt.Sprintf("hook %q: missing modifies_repository, defaulting to false", name),
				Path:    path,
			})
		}

		hooks[name] = HookDefinition{
			Name:                  name,
			Command:               command,
			Description:           rh.Description,
			ModifiesRepository:    modifies,
			ModifiesRepositorySet: modifiesSet,
			ExecutionType:         execType,
			Workdir:               rh.Workdir,
			RunAtRoot:             rh.RunAtRoot,
			Env:                   rh.Env,
			Files:                 rh.Files,
			DependsOn:             rh.DependsOn,
			RunAlways:             rh.RunAlways,
			SourcePath:            path,
		}
	}

	groups := make(map[string]GroupDefinition, len(raw.Groups))
	for name, rg := range raw.Groups {
		if invalidName(name) {
			return nil, nil, fmt.Errorf("%s: %w: group name %q contains whitespace or a path separator",
				path, hookserrors.ErrValidationError, name)
		}
		if _, clash := hooks[name]; clash {
			return nil, nil, fmt.Errorf("%s: %w: %q is defined as both a hook and a group",
				path, hookserrors.ErrValidationError, name)
		}

		for key := range lenient.Groups[name] {
			if !knownGroupKeys[key] {
				diags = append(diags, hookserrors.Diagnostic{
					Kind: hookserrors.KindValidationWarning, Severity: hookserrors.SeverityWarning,
					Message: fmt.Sprintf("group %q: unrecognized key %q", name, key),
					Path:    path,
				})
			}
		}

		exec := GroupExecution(rg.Execution)
		if exec == "" {
			if rg.Parallel {
				exec = Parallel
			} else {
				exec = Sequential
			}
		}
		if exec != Sequential && exec != Parallel && exec != ForceParallel {
			return nil, nil, fmt.Errorf("%s: %w: group %q has invalid execution %q",
				path, hookserrors.ErrValidationError, name, rg.Execution)
		}

		groups[name] = GroupDefinition{
			Name:       name,
			Includes:   rg.Includes,
			Execution:  exec,
			SourcePath: path,
		}
	}

	return &ConfigFile{
		Path:    path,
		Imports: raw.Imports,
		Hooks:   hooks,
		Groups:  groups,
	}, diags, nil
}

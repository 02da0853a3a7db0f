// ABOUTME: Resolver: walks a changed path's ancestors to find the nearest hooks.toml defining an event
// ABOUTME: Groups paths by resolved config in stable canonical-path order; see spec.md §4.3

package resolver

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/githooks-go/githooks/internal/fuzzyname"
	"github.com/githooks-go/githooks/internal/hookconfig"
	"github.com/githooks-go/githooks/internal/hookserrors"
)

// ResolvedGroup pairs an EffectiveConfig with the paths in the current
// ChangeSet whose nearest defining config it is.
type ResolvedGroup struct {
	Config *hookconfig.EffectiveConfig
	Paths  []string
}

// ResolvedTarget pairs a single name (hook or group) with the
// EffectiveConfig that defines it, produced by Resolve-by-name.
type ResolvedTarget struct {
	Config *hookconfig.EffectiveConfig
	Name   string
}

// Resolver walks a repository tree looking for the nearest hooks.toml
// that defines a requested event or name, loading each candidate
// through a shared Loader so identical config paths are parsed once.
type Resolver struct {
	repoRoot string
	loader   *hookconfig.Loader
}

// New builds a Resolver rooted at repoRoot, using loader to parse and
// merge any hooks.toml it encounters while walking.
func New(repoRoot string, loader *hookconfig.Loader) *Resolver {
	return &Resolver{repoRoot: repoRoot, loader: loader}
}

// ResolveForEvent implements Resolve-for-event: for every path in
// changed, walk upward from its directory looking for the nearest
// hooks.toml defining event, then group paths by the canonical path of
// their resolved config. Groups are returned in lexicographic order of
// that canonical path; paths within a group retain ChangeSet order.
// A path for which no ancestor config defines event contributes no
// hooks and is silently dropped from the result, per spec.
func (r *Resolver) ResolveForEvent(event string, changed []string) ([]ResolvedGroup, error) {
	order := make([]string, 0)
	byConfig := make(map[string]*hookconfig.EffectiveConfig)
	pathsByConfig := make(map[string][]string)

	for _, p := range changed {
		startDir := filepath.Join(r.repoRoot, filepath.FromSlash(filepath.Dir(p)))
		ec, err := r.nearestDefining(startDir, event)
		if err != nil {
			return nil, err
		}
		if ec == nil {
			continue
		}
		if _, seen := byConfig[ec.RootPath]; !seen {
			byConfig[ec.RootPath] = ec
			order = append(order, ec.RootPath)
		}
		pathsByConfig[ec.RootPath] = append(pathsByConfig[ec.RootPath], p)
	}

	sort.Strings(order)

	groups := make([]ResolvedGroup, 0, len(order))
	for _, canon := range order {
		groups = append(groups, ResolvedGroup{Config: byConfig[canon], Paths: pathsByConfig[canon]})
	}
	return groups, nil
}

// ResolveByName implements Resolve-by-name: find the nearest hooks.toml
// to fromDir (walking up to the repository root, inclusive) that
// defines name as a hook or group.
func (r *Resolver) ResolveByName(fromDir, name string) (*ResolvedTarget, error) {
	var allNames []string

	dir := fromDir
	for {
		configPath := filepath.Join(dir, "hooks.toml")
		if fileExists(configPath) {
			ec, err := r.loader.Load(configPath)
			if err != nil {
				return nil, err
			}
			allNames = append(allNames, ec.Names()...)
			if ec.Defines(name) {
				return &ResolvedTarget{Config: ec, Name: name}, nil
			}
		}
		if dir == r.repoRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	suggestion := ""
	if len(allNames) > 0 {
		if s := fuzzyname.Suggest(name, allNames, 1); len(s) > 0 {
			suggestion = s[0]
		}
	}
	msg := fmt.Sprintf("no hook or group named %q found from %s to repository root", name, fromDir)
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return nil, fmt.Errorf("%w: %s", hookserrors.ErrNameNotFound, msg)
}

// nearestDefining walks from startDir up to (and including) the
// repository root, returning the first loaded EffectiveConfig whose
// hooks or groups define event. Returns a nil config, nil error if no
// ancestor defines it.
func (r *Resolver) nearestDefining(startDir, event string) (*hookconfig.EffectiveConfig, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, "hooks.toml")
		if fileExists(configPath) {
			ec, err := r.loader.Load(configPath)
			if err != nil {
				return nil, err
			}
			if ec.Defines(event) {
				return ec, nil
			}
		}
		if dir == r.repoRoot {
			return nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir || !strings.HasPrefix(dir, r.repoRoot) {
			return nil, nil
		}
		dir = parent
	}
}

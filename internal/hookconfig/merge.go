// ABOUTME: Import resolution and EffectiveConfig assembly with cycle detection and allow-list gating
// ABOUTME: Loader caches EffectiveConfigs by canonical root path for the lifetime of one invocation

package hookconfig

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/githooks-go/githooks/internal/hookserrors"
)

// ImportRecord is one row of the --trace-imports machine-readable
// record: an imported file's canonical path, the order it was first
// pulled into the merge (0 is first), and every hook/group name it
// contributed that a later import or the importing file's own local
// definitions went on to override.
type ImportRecord struct {
	Path            string
	Order           int
	OverriddenNames []string
}

// Loader resolves hooks.toml files into EffectiveConfigs, caching by
// canonical path and detecting import cycles. Not safe for concurrent use
// during population; once populated the cache is read-only and safe to
// share.
type Loader struct {
	repoRoot  string
	allowlist []string
	strict    bool

	cache map[string]*EffectiveConfig

	trace       []*ImportRecord
	traceByPath map[string]*ImportRecord
}

// NewLoader creates a Loader rooted at repoRoot (used to enforce import
// path containment) with the given absolute-import allow-list.
func NewLoader(repoRoot string, allowlist []string, strict bool) *Loader {
	return &Loader{
		repoRoot:    repoRoot,
		allowlist:   allowlist,
		strict:      strict,
		cache:       make(map[string]*EffectiveConfig),
		traceByPath: make(map[string]*ImportRecord),
	}
}

// Trace returns the import record built up over every Load call this
// Loader has made so far, in inclusion order. Building it costs one map
// lookup and a slice append per import regardless of whether the caller
// asked for --trace-imports, so there is nothing to toggle here.
func (l *Loader) Trace() []ImportRecord {
	out := make([]ImportRecord, len(l.trace))
	for i, rec := range l.trace {
		out[i] = *rec
	}
	return out
}

// Load returns the EffectiveConfig for the hooks.toml at path, building
// and caching it (and every file it transitively imports) if not already
// cached.
func (l *Loader) Load(path string) (*EffectiveConfig, error) {
	canon, err := canonicalize(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", hookserrors.ErrIO, err)
	}
	if ec, ok := l.cache[canon]; ok {
		return ec, nil
	}

	ec, err := l.resolve(canon, map[string]bool{})
	if err != nil {
		return nil, err
	}
	l.cache[canon] = ec
	return ec, nil
}

// resolve builds the EffectiveConfig for the file at canonical path
// canon. chain tracks paths currently being resolved on this DFS branch,
// to detect import cycles.
func (l *Loader) resolve(canon string, chain map[string]bool) (*EffectiveConfig, error) {
	if cached, ok := l.cache[canon]; ok {
		return cached, nil
	}

	cf, diags, err := ParseFile(canon, l.strict)
	if err != nil {
		return nil, err
	}

	acc := &EffectiveConfig{
		RootPath: canon,
		Dir:      filepath.Dir(canon),
		Hooks:    map[string]HookDefinition{},
		Groups:   map[string]GroupDefinition{},
	}
	acc.Diagnostics = append(acc.Diagnostics, diags...)

	chain[canon] = true
	for _, imp := range cf.Imports {
		impPath, err := l.resolveImportPath(filepath.Dir(canon), imp)
		if err != nil {
			return nil, err
		}

		if chain[impPath] {
			acc.Diagnostics = append(acc.Diagnostics, hookserrors.Diagnostic{
				Kind: hookserrors.KindCycleSkipped, Severity: hookserrors.SeverityInfo,
				Message: fmt.Sprintf("import cycle detected, skipping repeated import of %s", impPath),
				Path:    canon,
			})
			continue
		}

		if _, seen := l.traceByPath[impPath]; !seen {
			rec := &ImportRecord{Path: impPath, Order: len(l.trace)}
			l.trace = append(l.trace, rec)
			l.traceByPath[impPath] = rec
		}

		imported, err := l.resolve(impPath, chain)
		if err != nil {
			return nil, err
		}
		l.cache[impPath] = imported

		acc = l.mergeEffective(acc, imported)
	}
	delete(chain, canon)

	// Overlay this file's own local hooks/groups last: local always wins.
	local := &EffectiveConfig{
		RootPath: canon,
		Dir:      acc.Dir,
		Hooks:    cf.Hooks,
		Groups:   cf.Groups,
	}
	final := l.mergeEffective(acc, local)
	final.RootPath = canon
	final.Dir = acc.Dir

	return final, nil
}

// mergeEffective yields an EffectiveConfig whose hook/group maps are a
// overlaid by b: b wins on key collision. Diagnostics from both are
// concatenated; overrides are additionally recorded, both as
// diagnostics and, when the overridden definition came from a tracked
// import, against that import's ImportRecord.
func (l *Loader) mergeEffective(a, b *EffectiveConfig) *EffectiveConfig {
	merged := &EffectiveConfig{
		RootPath: b.RootPath,
		Dir:      b.Dir,
		Hooks:    make(map[string]HookDefinition, len(a.Hooks)+len(b.Hooks)),
		Groups:   make(map[string]GroupDefinition, len(a.Groups)+len(b.Groups)),
	}
	merged.Diagnostics = append(merged.Diagnostics, a.Diagnostics...)
	merged.Diagnostics = append(merged.Diagnostics, b.Diagnostics...)

	for name, def := range a.Hooks {
		merged.Hooks[name] = def
	}
	for name, def := range a.Groups {
		merged.Groups[name] = def
	}

	for name, def := range b.Hooks {
		if prior, ok := merged.Hooks[name]; ok && prior.SourcePath != def.SourcePath {
			merged.Diagnostics = append(merged.Diagnostics, hookserrors.Diagnostic{
				Kind: hookserrors.KindOverride, Severity: hookserrors.SeverityInfo,
				Message: fmt.Sprintf("hook %q from %s overridden by %s", name, prior.SourcePath, def.SourcePath),
				Path:    def.SourcePath,
			})
			l.recordOverride(prior.SourcePath, name)
		}
		delete(merged.Groups, name)
		merged.Hooks[name] = def
	}
	for name, def := range b.Groups {
		if prior, ok := merged.Groups[name]; ok && prior.SourcePath != def.SourcePath {
			merged.Diagnostics = append(merged.Diagnostics, hookserrors.Diagnostic{
				Kind: hookserrors.KindOverride, Severity: hookserrors.SeverityInfo,
				Message: fmt.Sprintf("group %q from %s overridden by %s", name, prior.SourcePath, def.SourcePath),
				Path:    def.SourcePath,
			})
			l.recordOverride(prior.SourcePath, name)
		}
		delete(merged.Hooks, name)
		merged.Groups[name] = def
	}

	return merged
}

// recordOverride appends name to the ImportRecord for sourcePath, if
// sourcePath is a tracked import (it isn't when the overridden
// definition came from the root file itself, which has no ImportRecord).
func (l *Loader) recordOverride(sourcePath, name string) {
	if rec, ok := l.traceByPath[sourcePath]; ok {
		rec.OverriddenNames = append(rec.OverriddenNames, name)
	}
}

// resolveImportPath resolves an import string against the importing
// file's directory, enforcing repository-root containment unless the
// resolved path is absolute and lies under an allow-listed directory.
func (l *Loader) resolveImportPath(fromDir, imp string) (string, error) {
	var candidate string
	if filepath.IsAbs(imp) {
		candidate = imp
	} else {
		candidate = filepath.Join(fromDir, imp)
	}

	canon, err := canonicalize(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: import %q: %v", hookserrors.ErrImportFileMissing, imp, err)
	}

	if !isUnder(canon, l.repoRoot) {
		if !isUnderAny(canon, l.allowlist) {
			return "", fmt.Errorf("%w: import %q resolves to %s, outside the repository root and no allow-listed directory",
				hookserrors.ErrImportPathRejected, imp, canon)
		}
	}

	return canon, nil
}

// canonicalize resolves symlinks and returns an absolute, cleaned path.
// Used for every security-relevant path decision (import allow-listing,
// repo-root containment, the per-run EffectiveConfig cache key) so a
// symlink cannot be used to reach the same file under two different
// cache keys or to escape the repository root undetected.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.Clean(resolved), nil
}

func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isUnderAny(path string, dirs []string) bool {
	for _, d := range dirs {
		canonDir, err := canonicalize(d)
		if err != nil {
			continue
		}
		if isUnder(path, canonDir) {
			return true
		}
	}
	return false
}

// SortedCanonicalPaths returns the canonical root paths of every
// EffectiveConfig currently cached, in lexicographic order — used by the
// Resolver to group changed paths by config deterministically.
func (l *Loader) SortedCanonicalPaths() []string {
	paths := make([]string, 0, len(l.cache))
	for p := range l.cache {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

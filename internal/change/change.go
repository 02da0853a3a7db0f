// ABOUTME: Change Provider: produces the ordered, de-duplicated set of repo-relative changed paths
// ABOUTME: All three modes shell out to git through internal/git's allow-listed command validator

package change

import (
	"fmt"
	"strings"

	"github.com/githooks-go/githooks/internal/hookserrors"
)

// Mode selects how the Change Provider produces its set.
type Mode string

const (
	// WorkingTreeMode covers pre-commit-style events: staged and
	// unstaged modifications and additions.
	WorkingTreeMode Mode = "working-tree"
	// RangeMode covers pre-push-style events: files changed between a
	// local tip and a remote tip.
	RangeMode Mode = "range"
	// LintMode enumerates all non-ignored files under a directory.
	LintMode Mode = "lint"
)

// ChangeSet is the ordered, de-duplicated list of repository-relative
// POSIX-style paths a run operates on.
type ChangeSet []string

// Provider produces ChangeSets for one repository.
type Provider struct {
	RepoRoot string
}

// New creates a Provider rooted at repoRoot (a canonical absolute path).
func New(repoRoot string) *Provider {
	return &Provider{RepoRoot: repoRoot}
}

// dedupOrdered appends items to seen/order, keeping first-occurrence order.
type dedupOrdered struct {
	seen  map[string]bool
	order []string
}

func newDedupOrdered() *dedupOrdered {
	return &dedupOrdered{seen: map[string]bool{}}
}

func (d *dedupOrdered) add(path string) {
	path = filepathToPosix(path)
	if d.seen[path] {
		return
	}
	d.seen[path] = true
	d.order = append(d.order, path)
}

func filepathToPosix(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// wrapGitErr wraps a Change Provider failure as GitCommandFailed. Every
// failure gets that kind: a directory that is not a repository is not
// told apart as NotARepository, and filesystem errors are not reported
// as IoError.
func wrapGitErr(err error, verb string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", verb, hookserrors.ErrGitCommandFailed, err)
}

// ABOUTME: Range mode: files changed between a local tip and a remote tip
// ABOUTME: A missing remote ref yields an empty ChangeSet rather than an error, per spec

package change

import (
	"context"
	"strings"

	"github.com/githooks-go/githooks/internal/git"
	"github.com/githooks-go/githooks/internal/log"
)

// Range returns the files changed between localRef and remoteRef. When
// the remote side is unknown to git, this returns an empty ChangeSet:
// the caller (Orchestrator) decides whether that is itself an error for
// the invoking event. Any other git failure propagates as an error;
// partial failure is not permitted.
func (p *Provider) Range(ctx context.Context, localRef, remoteRef string) (ChangeSet, error) {
	spec := localRef + "..." + remoteRef
	out, err := git.Run(ctx, p.RepoRoot, "diff", "--name-only", "-z", spec)
	if err != nil {
		if isUnknownRevision(out) {
			log.Debug("range diff %s: unknown revision, treating as empty range: %v", spec, err)
			return ChangeSet{}, nil
		}
		return nil, wrapGitErr(err, "range diff")
	}

	result := newDedupOrdered()
	for _, path := range strings.Split(out, "\x00") {
		if path == "" {
			continue
		}
		result.add(path)
	}
	return ChangeSet(result.order), nil
}

// isUnknownRevision reports whether git's combined output looks like the
// "unknown revision" / "bad revision" failure git emits when one side of
// a ref range does not exist (e.g. the remote tip is unknown), as
// distinct from every other diff failure this package must propagate.
func isUnknownRevision(out string) bool {
	return strings.Contains(out, "unknown revision") || strings.Contains(out, "bad revision")
}

// ABOUTME: Working-tree mode: staged and unstaged modifications and additions, deletions excluded
// ABOUTME: Parses NUL-separated `git status --porcelain=v1 -z` records, including rename pairs

package change

import (
	"context"
	"strings"

	"github.com/githooks-go/githooks/internal/git"
)

// WorkingTree returns the staged and unstaged modified/added files.
// Deleted entries are excluded: they cannot be globbed or passed as
// arguments to a hook.
func (p *Provider) WorkingTree(ctx context.Context) (ChangeSet, error) {
	out, err := git.Run(ctx, p.RepoRoot, "status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return nil, wrapGitErr(err, "git status")
	}
	return parseStatusZ(out), nil
}

// parseStatusZ parses the NUL-separated output of
// `git status --porcelain=v1 -z`. Each record is "XY PATH\0", except
// rename/copy records which are "XY PATH\0ORIG_PATH\0" — the orig path is
// consumed and dropped, since only the current path is a changed path.
func parseStatusZ(out string) ChangeSet {
	tokens := strings.Split(out, "\x00")
	result := newDedupOrdered()

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if len(tok) < 4 {
			continue
		}
		xy := tok[:2]
		path := tok[3:]

		isRenameOrCopy := xy[0] == 'R' || xy[0] == 'C'
		if isRenameOrCopy {
			// The next token is the original path; it names a file that
			// stopped existing at that path, not a changed one.
			i++
		}

		if strings.ContainsRune(xy, 'D') {
			continue
		}

		result.add(path)
	}

	return ChangeSet(result.order)
}

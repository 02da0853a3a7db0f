// ABOUTME: Answers the Change Provider's worktree_info contract from internal/git's queries

package change

import "github.com/githooks-go/githooks/internal/git"

// WorktreeInfo describes the repository's worktree state, consumed by the
// template engine's IS_WORKTREE/WORKTREE_NAME/COMMON_DIR variables.
type WorktreeInfo struct {
	IsWorktree bool
	Name       string
	CommonDir  string
}

// Info answers the worktree_info(repo) contract.
func (p *Provider) Info() (WorktreeInfo, error) {
	isWt := git.IsWorktree(p.RepoRoot)

	name, err := git.CurrentWorktreeName(p.RepoRoot)
	if err != nil {
		return WorktreeInfo{}, err
	}

	common, err := git.CommonDir(p.RepoRoot)
	if err != nil {
		return WorktreeInfo{}, err
	}

	return WorktreeInfo{IsWorktree: isWt, Name: name, CommonDir: common}, nil
}

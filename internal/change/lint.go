// ABOUTME: Lint mode: enumerates all non-ignored files under a directory, hierarchical .gitignore-aware
// ABOUTME: Reuses the installed git binary via `check-ignore --stdin -z` rather than reimplementing gitignore

package change

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/githooks-go/githooks/internal/git"
)

const checkIgnoreBatchSize = 512

// EnumerateNonIgnored walks startDir (an absolute path at or under p.RepoRoot)
// and returns every file not excluded by any hierarchical .gitignore
// between it and the repository root, plus the standard .git exclusion.
func (p *Provider) EnumerateNonIgnored(ctx context.Context, startDir string) (ChangeSet, error) {
	var all []string
	err := filepath.WalkDir(startDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(p.RepoRoot, path)
		if err != nil {
			return err
		}
		all = append(all, filepathToPosix(rel))
		return nil
	})
	if err != nil {
		return nil, wrapGitErr(err, "enumerate files")
	}

	nonIgnored, err := p.filterIgnored(ctx, all)
	if err != nil {
		return nil, err
	}

	result := newDedupOrdered()
	for _, path := range nonIgnored {
		result.add(path)
	}
	return ChangeSet(result.order), nil
}

// filterIgnored removes every path git considers ignored, batching
// through `git check-ignore --stdin -z` to avoid one subprocess per file.
func (p *Provider) filterIgnored(ctx context.Context, paths []string) ([]string, error) {
	ignored := make(map[string]bool, len(paths))

	for start := 0; start < len(paths); start += checkIgnoreBatchSize {
		end := min(start+checkIgnoreBatchSize, len(paths))
		batch := paths[start:end]

		stdin := strings.Join(batch, "\x00") + "\x00"
		stdout, stderr, exitCode, err := git.RunStdin(ctx, p.RepoRoot, []byte(stdin),
			"check-ignore", "--stdin", "-z")
		if err != nil {
			return nil, wrapGitErr(err, "git check-ignore")
		}
		// exit code 1 means "none of the paths are ignored", not a
		// failure; anything else but 0/1 is a real git error.
		if exitCode != 0 && exitCode != 1 {
			return nil, wrapGitErr(os.ErrInvalid, "git check-ignore: "+stderr)
		}

		for _, m := range strings.Split(stdout, "\x00") {
			if m != "" {
				ignored[filepathToPosix(m)] = true
			}
		}
	}

	kept := make([]string, 0, len(paths))
	for _, path := range paths {
		if !ignored[path] {
			kept = append(kept, path)
		}
	}
	return kept, nil
}

// ABOUTME: Resolves a hook's working directory: explicit workdir, else repo root if run_at_root, else HOOK_DIR

package executor

import (
	"path/filepath"

	"github.com/githooks-go/githooks/internal/hookconfig"
)

func resolveWorkdir(hook hookconfig.HookDefinition, hookDir, repoRoot, expandedWorkdir string) string {
	if expandedWorkdir != "" {
		if filepath.IsAbs(expandedWorkdir) {
			return expandedWorkdir
		}
		return filepath.Join(hookDir, expandedWorkdir)
	}
	if hook.RunAtRoot {
		return repoRoot
	}
	return hookDir
}

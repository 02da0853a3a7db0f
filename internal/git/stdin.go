// ABOUTME: Runs an allow-listed git subcommand with piped stdin, stdout/stderr kept separate
// ABOUTME: Used by check-ignore --stdin, which must not have its matched-path stdout mixed with stderr

package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// RunStdin executes an allow-listed git subcommand in dir with stdin
// piped from the given bytes, returning stdout and stderr separately.
// exitCode reports the process exit code (git check-ignore uses 1 to mean
// "no paths matched", which is not a failure the caller should treat as
// an error).
func RunStdin(ctx context.Context, dir string, stdin []byte, args ...string) (stdout string, stderr string, exitCode int, err error) {
	sanitizedArgs, err := sanitizeGitArgs(args)
	if err != nil {
		return "", "", -1, fmt.Errorf("git command validation failed: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", sanitizedArgs...)
	cmd.Dir = dir
	cmd.Stdin = bytes.NewReader(stdin)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	code := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if runErr != nil {
		return outBuf.String(), errBuf.String(), -1, runErr
	}

	return outBuf.String(), errBuf.String(), code, nil
}

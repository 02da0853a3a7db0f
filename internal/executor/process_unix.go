// ABOUTME: Unix process group management for hook processes
// ABOUTME: Sets Setpgid so SIGINT reaches a hook's full child tree, not just the direct child

//go:build unix

package executor

import (
	"os/exec"
	"syscall"
)

// setProcGroup configures the command to run in its own process group.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// interruptProcGroup sends SIGINT to the entire process group, used to
// propagate a signal the orchestrator itself received to live children
// before waiting for their termination.
func interruptProcGroup(cmd *exec.Cmd) error {
	if cmd.Process != nil {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGINT)
	}
	return nil
}

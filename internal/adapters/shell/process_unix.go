//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

// killProcessGroup kills the build and every process it spawned.
// pty.Start makes the child a session leader, so its pid is the group id.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"io"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// The child gets its own process group so a timeout takes anything it
// spawned down with it, and dies if we do.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: unix.SIGKILL,
	}
}

// terminate kills the child's whole process group, falling back to the
// child alone.
func terminate(cmd *exec.Cmd) error {
	err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	if err != nil {
		return cmd.Process.Kill()
	}

	return nil
}

func attachProcess(cmd *exec.Cmd) io.Closer {
	return nopCloser{}
}

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"io"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/winjob"
)

func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}

// Closing the job kills the child and anything it started.
func attachProcess(cmd *exec.Cmd) io.Closer {
	job, err := winjob.KillOnClose(cmd.Process)
	if err != nil {
		logger.Debugf("probe: unable to assign process %d to a job object, %v", cmd.Process.Pid, err)
		return nopCloser{}
	}

	return job
}

func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}

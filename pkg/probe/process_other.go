//go:build !linux && !windows

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"io"
	"os/exec"
)

func configureCommand(cmd *exec.Cmd) {}

func attachProcess(cmd *exec.Cmd) io.Closer {
	return nopCloser{}
}

func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}

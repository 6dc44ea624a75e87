/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Juice-Labs/encprobe/pkg/logger"
)

const (
	readChunkSize = 2048

	// Bounds Wait once the child has exited but something still holds its
	// output pipe open.
	waitDelay = 2 * time.Second
)

// errInterrupted is returned by drain when the context ended before the
// output did. Whatever was read is incomplete.
var errInterrupted = errors.New("probe: output interrupted")

type process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser

	// Platform specific resources tied to the child, e.g. a job object.
	attached io.Closer

	stopInterrupt func() bool

	// Set before the child is killed because ctx ended.
	interrupted atomic.Bool

	drained   bool
	closeOnce sync.Once
}

// launch starts command with its stdout connected to a pipe. The child is
// killed when ctx is done.
func launch(ctx context.Context, command Command) (*process, error) {
	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}

	cmd := exec.Command(command.Path, command.Args...)
	cmd.WaitDelay = waitDelay
	configureCommand(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, ErrSpawn.Wrap(err)
	}

	err = cmd.Start()
	if err != nil {
		return nil, ErrSpawn.Wrap(err)
	}

	p := &process{
		cmd:      cmd,
		stdout:   stdout,
		attached: attachProcess(cmd),
	}

	// Killing the child does not unblock a read while a grandchild still
	// holds the write end, closing our end does.
	p.stopInterrupt = context.AfterFunc(ctx, func() {
		p.interrupted.Store(true)

		if err := terminate(cmd); err != nil && !errors.Is(err, os.ErrProcessDone) {
			logger.Debugf("probe: kill failed with %v", err)
		}

		stdout.Close()
	})

	return p, nil
}

// drain reads the child's output until the stream closes, whether the
// child exited cleanly or crashed. The stream only counts as complete when
// it ended before ctx did; otherwise errInterrupted is returned.
func (p *process) drain() ([]byte, error) {
	var output bytes.Buffer
	chunk := make([]byte, readChunkSize)

	for {
		n, err := p.stdout.Read(chunk)
		output.Write(chunk[:n])

		if err == nil {
			continue
		}

		// interrupted is set before the kill, so an end of stream seen
		// while it is still false was not caused by the kill.
		if p.interrupted.Load() {
			return output.Bytes(), errInterrupted
		}

		if errors.Is(err, io.EOF) {
			p.drained = true
			return output.Bytes(), nil
		}

		return output.Bytes(), err
	}
}

// close releases the pipe and the child. Safe to call more than once; only
// the first call has any effect.
func (p *process) close() {
	p.closeOnce.Do(func() {
		p.stopInterrupt()
		p.stdout.Close()

		if !p.drained {
			if err := terminate(p.cmd); err != nil && !errors.Is(err, os.ErrProcessDone) {
				logger.Debugf("probe: kill failed with %v", err)
			}
		}

		// The exit status says nothing the output has not already said.
		if err := p.cmd.Wait(); err != nil {
			logger.Debugf("probe: process %d exited with %v", p.cmd.Process.Pid, err)
		}

		if err := p.attached.Close(); err != nil {
			logger.Debugf("probe: releasing process resources failed with %v", err)
		}
	})
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

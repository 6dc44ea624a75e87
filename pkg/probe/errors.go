/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"context"

	"github.com/Juice-Labs/encprobe/pkg/errors"
)

// Every probe failure is one of these. All of them mean the same thing to
// the caller: no adapter capabilities are known.
var (
	ErrEnumerate   = errors.New("probe: unable to enumerate adapters")
	ErrSpawn       = errors.New("probe: unable to launch the probe process")
	ErrRead        = errors.New("probe: unable to read probe output")
	ErrEmptyOutput = errors.New("probe: the probe process produced no output")
	ErrParse       = errors.New("probe: unable to parse probe output")
	ErrReported    = errors.New("probe: the probe process reported an error")
	ErrTimeout     = errors.New("probe: the probe process timed out")
	ErrCanceled    = errors.New("probe: canceled")
)

const (
	ResultSuccess   = "success"
	ResultEnumerate = "enumerate"
	ResultSpawn     = "spawn"
	ResultRead      = "read"
	ResultEmpty     = "empty"
	ResultParse     = "parse"
	ResultReported  = "reported"
	ResultTimeout   = "timeout"
	ResultCanceled  = "canceled"
	ResultUnknown   = "unknown"
)

// contextError maps the error of an ended context to ErrTimeout or
// ErrCanceled.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout.Wrap(err)
	}

	return ErrCanceled.Wrap(err)
}

// Result maps a Probe error to its metrics label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, ErrEnumerate):
		return ResultEnumerate
	case errors.Is(err, ErrSpawn):
		return ResultSpawn
	case errors.Is(err, ErrRead):
		return ResultRead
	case errors.Is(err, ErrEmptyOutput):
		return ResultEmpty
	case errors.Is(err, ErrParse):
		return ResultParse
	case errors.Is(err, ErrReported):
		return ResultReported
	case errors.Is(err, ErrTimeout):
		return ResultTimeout
	case errors.Is(err, ErrCanceled):
		return ResultCanceled
	}

	return ResultUnknown
}

//go:build linux && !cgo

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package detect

import (
	"github.com/Juice-Labs/encprobe/pkg/errors"
	"github.com/Juice-Labs/encprobe/pkg/luid"
)

var ErrNvml = errors.New("detect: built without cgo, nvml is unavailable")

func intelRuntimeAvailable() bool {
	return false
}

type nvmlQuery struct{}

func newNvidiaQuery() nvidiaQuery {
	return nvmlQuery{}
}

func (nvmlQuery) Query(address luid.PCIAddress) (encoderSupport, error) {
	return encoderSupport{}, ErrNvml
}

func (nvmlQuery) Close() error {
	return nil
}

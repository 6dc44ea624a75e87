//go:build linux && cgo

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package detect

import (
	"fmt"
	"sync"

	"github.com/NVIDIA/go-nvml/pkg/dl"
	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/Juice-Labs/encprobe/pkg/errors"
	"github.com/Juice-Labs/encprobe/pkg/luid"
)

var ErrNvml = errors.New("detect: nvml query failed")

var intelRuntimeLibraries = []string{
	"libmfx-gen.so.1.2",
	"libmfxhw64.so.1",
	"libvpl.so.2",
}

func check(name string) error {
	lib := dl.New(name, dl.RTLD_NOW)
	err := lib.Open()
	if err != nil {
		return err
	}

	return lib.Close()
}

func intelRuntimeAvailable() bool {
	for _, name := range intelRuntimeLibraries {
		if check(name) == nil {
			return true
		}
	}

	return false
}

// nvmlQuery initializes NVML on first use so machines without the NVIDIA
// driver never load it.
type nvmlQuery struct {
	once        sync.Once
	initialized bool
	err         error
}

func newNvidiaQuery() nvidiaQuery {
	return &nvmlQuery{}
}

func nvmlError(op string, ret nvml.Return) error {
	return ErrNvml.Wrap(fmt.Errorf("%s, %s", op, nvml.ErrorString(ret)))
}

func (query *nvmlQuery) Query(address luid.PCIAddress) (encoderSupport, error) {
	query.once.Do(func() {
		if ret := nvml.Init(); ret != nvml.SUCCESS {
			query.err = nvmlError("init", ret)
			return
		}

		query.initialized = true
	})
	if query.err != nil {
		return encoderSupport{}, query.err
	}

	device, ret := nvml.DeviceGetHandleByPciBusId(fmt.Sprintf("%08x:%02x:%02x.%x",
		address.Domain, address.Bus, address.Device, address.Function))
	if ret != nvml.SUCCESS {
		return encoderSupport{}, nvmlError("device "+address.String(), ret)
	}

	capacity, ret := device.GetEncoderCapacity(nvml.ENCODER_QUERY_HEVC)
	if ret != nvml.SUCCESS {
		capacity = 0
	}

	major, minor, ret := device.GetCudaComputeCapability()
	if ret != nvml.SUCCESS {
		major, minor = 0, 0
	}

	return nvencSupport(capacity, major, minor), nil
}

func (query *nvmlQuery) Close() error {
	if !query.initialized {
		return nil
	}

	query.initialized = false
	if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
		return nvmlError("shutdown", ret)
	}

	return nil
}

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Juice-Labs/encprobe/pkg/logger"
)

var (
	modGdi32                = windows.NewLazySystemDLL("gdi32.dll")
	procD3DKMTEnumAdapters2 = modGdi32.NewProc("D3DKMTEnumAdapters2")
	procD3DKMTCloseAdapter  = modGdi32.NewProc("D3DKMTCloseAdapter")
)

// D3DKMT_ADAPTERINFO
type d3dkmtAdapterInfo struct {
	hAdapter                        uint32
	luidLowPart                     uint32
	luidHighPart                    int32
	numOfSources                    uint32
	bPrecisePresentRegionsPreferred int32
}

// D3DKMT_ENUMADAPTERS2
type d3dkmtEnumAdapters2 struct {
	numAdapters uint32
	adapters    *d3dkmtAdapterInfo
}

// D3DKMT_CLOSEADAPTER
type d3dkmtCloseAdapter struct {
	hAdapter uint32
}

type kmtEnumerator struct{}

func NewSystemEnumerator() Enumerator {
	return kmtEnumerator{}
}

func (kmtEnumerator) Enumerate(fn EnumerateFn) error {
	if err := procD3DKMTEnumAdapters2.Find(); err != nil {
		return ErrUnsupported.Wrap(err)
	}

	var query d3dkmtEnumAdapters2
	if err := enumAdapters2(&query); err != nil {
		return err
	}

	if query.numAdapters == 0 {
		return nil
	}

	adapters := make([]d3dkmtAdapterInfo, query.numAdapters)
	query.adapters = &adapters[0]
	if err := enumAdapters2(&query); err != nil {
		return err
	}

	adapters = adapters[:query.numAdapters]
	defer func() {
		for _, adapter := range adapters {
			closeAdapter := d3dkmtCloseAdapter{hAdapter: adapter.hAdapter}
			status, _, _ := procD3DKMTCloseAdapter.Call(uintptr(unsafe.Pointer(&closeAdapter)))
			if status != 0 {
				logger.Debugf("D3DKMTCloseAdapter failed with 0x%x", status)
			}
		}
	}()

	for index, adapter := range adapters {
		id := Luid(uint64(uint32(adapter.luidHighPart))<<32 | uint64(adapter.luidLowPart))
		if !fn(uint32(index), id) {
			break
		}
	}

	return nil
}

func enumAdapters2(query *d3dkmtEnumAdapters2) error {
	status, _, _ := procD3DKMTEnumAdapters2.Call(uintptr(unsafe.Pointer(query)))
	if status != 0 {
		return fmt.Errorf("D3DKMTEnumAdapters2 failed with NTSTATUS 0x%x", status)
	}

	return nil
}

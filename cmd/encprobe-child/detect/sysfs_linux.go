/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package detect

import (
	"os"
	"path/filepath"

	"github.com/Juice-Labs/encprobe/pkg/api"
	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/luid"
)

type encoderSupport struct {
	Hevc bool
	Av1  bool
}

type nvidiaQuery interface {
	Query(address luid.PCIAddress) (encoderSupport, error)
	Close() error
}

// SysfsDetector resolves the identifiers produced by the sysfs enumerator
// back to PCI devices and asks the vendor runtime what they can encode.
type SysfsDetector struct {
	sysRoot string

	nvidia nvidiaQuery

	// intelRuntime reports whether the oneVPL / Media SDK runtime that
	// drives Intel encoders can be loaded.
	intelRuntime func() bool
}

func NewDetector() (Detector, error) {
	return &SysfsDetector{
		sysRoot:      "/sys",
		nvidia:       newNvidiaQuery(),
		intelRuntime: intelRuntimeAvailable,
	}, nil
}

func (detector *SysfsDetector) Close() error {
	return detector.nvidia.Close()
}

func (detector *SysfsDetector) Detect(id luid.Luid) (api.AdapterInfo, error) {
	address := id.PCIAddress()

	devicePath := filepath.Join(detector.sysRoot, "bus", "pci", "devices", address.String())
	if _, err := os.Stat(devicePath); err != nil {
		return api.AdapterInfo{}, ErrUnknownDevice.Wrapf("%s at %s", id, address)
	}

	vendor, device := luid.ReadPCIID(devicePath)
	logger.Debugf("%s: pci %s vendor %s device %s", id, address, vendor, device)

	info := api.AdapterInfo{
		IsIntel: vendor == VendorIntel,
		IsDgpu:  isDiscrete(devicePath, vendor, address),
	}

	switch vendor {
	case VendorNvidia:
		support, err := detector.nvidia.Query(address)
		if err != nil {
			logger.Warningf("%s: %v", id, err)
			break
		}

		info.SupportsHevc = support.Hevc
		info.SupportsAv1 = support.Av1

	case VendorIntel:
		if detector.intelRuntime() {
			info.SupportsHevc = true

			// Only the discrete Arc parts carry the AV1 encoder.
			info.SupportsAv1 = info.IsDgpu
		}
	}

	return info, nil
}

func isDiscrete(devicePath string, vendor string, address luid.PCIAddress) bool {
	switch vendor {
	case VendorNvidia:
		return true

	case VendorIntel:
		// Intel integrated graphics is always device 2 on the root bus.
		return address.Bus != 0 || address.Device != 2

	case VendorAmd:
		// amdgpu only exposes the VRAM vendor for dedicated memory, APUs
		// carve theirs out of system memory and sit on a non-zero bus.
		_, err := os.Stat(filepath.Join(devicePath, "mem_info_vram_vendor"))
		return err == nil
	}

	return address.Bus != 0
}

// nvencSupport derives encoder support from the HEVC encoder capacity and
// the CUDA compute capability. Parts without NVENC, e.g. Hopper, report no
// capacity whatever their compute capability.
func nvencSupport(hevcCapacity int, major int, minor int) encoderSupport {
	support := encoderSupport{
		Hevc: hevcCapacity > 0,
	}

	// NVENC AV1 arrived with Ada, compute capability 8.9.
	support.Av1 = support.Hevc && (major > 8 || (major == 8 && minor >= 9))

	return support
}

/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package detect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Juice-Labs/encprobe/pkg/api"
	"github.com/Juice-Labs/encprobe/pkg/luid"
)

type fakeNvidia map[string]encoderSupport

func (nvidia fakeNvidia) Query(address luid.PCIAddress) (encoderSupport, error) {
	support, found := nvidia[address.String()]
	if !found {
		return encoderSupport{}, errors.New("not found")
	}

	return support, nil
}

func (fakeNvidia) Close() error {
	return nil
}

func writeDevice(t *testing.T, sysRoot string, slot string, pciId string) luid.Luid {
	t.Helper()

	devicePath := filepath.Join(sysRoot, "bus", "pci", "devices", slot)
	if err := os.MkdirAll(devicePath, 0o755); err != nil {
		t.Fatal(err)
	}

	uevent := "DRIVER=test\nPCI_ID=" + pciId + "\nPCI_SLOT_NAME=" + slot + "\n"
	if err := os.WriteFile(filepath.Join(devicePath, "uevent"), []byte(uevent), 0o644); err != nil {
		t.Fatal(err)
	}

	address, err := luid.ParsePCIAddress(slot)
	if err != nil {
		t.Fatal(err)
	}

	return address.Luid()
}

func TestSysfsDetector(t *testing.T) {
	sysRoot := t.TempDir()

	igpu := writeDevice(t, sysRoot, "0000:00:02.0", "8086:A7A0")
	arc := writeDevice(t, sysRoot, "0000:03:00.0", "8086:56A0")
	ada := writeDevice(t, sysRoot, "0000:01:00.0", "10DE:2684")
	turing := writeDevice(t, sysRoot, "0000:02:00.0", "10DE:1E84")
	unqueried := writeDevice(t, sysRoot, "0000:04:00.0", "10DE:1C82")
	amd := writeDevice(t, sysRoot, "0000:05:00.0", "1002:744C")
	apu := writeDevice(t, sysRoot, "0000:c6:00.0", "1002:15BF")

	vramVendor := filepath.Join(sysRoot, "bus", "pci", "devices", "0000:05:00.0", "mem_info_vram_vendor")
	if err := os.WriteFile(vramVendor, []byte("samsung\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	detector := &SysfsDetector{
		sysRoot: sysRoot,
		nvidia: fakeNvidia{
			"0000:01:00.0": {Hevc: true, Av1: true},
			"0000:02:00.0": {Hevc: true},
		},
		intelRuntime: func() bool { return true },
	}
	defer detector.Close()

	tests := map[luid.Luid]api.AdapterInfo{
		igpu:      {IsIntel: true, SupportsHevc: true},
		arc:       {IsIntel: true, IsDgpu: true, SupportsHevc: true, SupportsAv1: true},
		ada:       {IsDgpu: true, SupportsHevc: true, SupportsAv1: true},
		turing:    {IsDgpu: true, SupportsHevc: true},
		unqueried: {IsDgpu: true},
		amd:       {IsDgpu: true},
		apu:       {},
	}

	for id, expected := range tests {
		info, err := detector.Detect(id)
		if err != nil {
			t.Errorf("%s: %v", id, err)
			continue
		}

		if info != expected {
			t.Errorf("%s: expected %+v, got %+v", id, expected, info)
		}
	}

	_, err := detector.Detect(luid.PCIAddress{Bus: 9}.Luid())
	if !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("expected ErrUnknownDevice, got %v", err)
	}
}

func TestSysfsDetectorWithoutIntelRuntime(t *testing.T) {
	sysRoot := t.TempDir()
	arc := writeDevice(t, sysRoot, "0000:03:00.0", "8086:56A0")

	detector := &SysfsDetector{
		sysRoot:      sysRoot,
		nvidia:       fakeNvidia{},
		intelRuntime: func() bool { return false },
	}

	info, err := detector.Detect(arc)
	if err != nil {
		t.Fatal(err)
	}

	if info != (api.AdapterInfo{IsIntel: true, IsDgpu: true}) {
		t.Errorf("unexpected capabilities %+v", info)
	}
}

func TestNvencSupport(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		major    int
		minor    int
		expected encoderSupport
	}{
		{"turing", 100, 7, 5, encoderSupport{Hevc: true}},
		{"ampere", 100, 8, 6, encoderSupport{Hevc: true}},
		{"ada", 100, 8, 9, encoderSupport{Hevc: true, Av1: true}},
		{"blackwell", 100, 12, 0, encoderSupport{Hevc: true, Av1: true}},
		{"hopper", 0, 9, 0, encoderSupport{}},
		{"no nvml answer", 0, 0, 0, encoderSupport{}},
	}

	for _, test := range tests {
		if support := nvencSupport(test.capacity, test.major, test.minor); support != test.expected {
			t.Errorf("%s: expected %+v, got %+v", test.name, test.expected, support)
		}
	}
}

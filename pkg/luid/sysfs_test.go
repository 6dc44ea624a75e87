/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCard(t *testing.T, sysRoot string, card string, uevent string) {
	t.Helper()

	devicePath := filepath.Join(sysRoot, "class", "drm", card, "device")
	if err := os.MkdirAll(devicePath, 0o755); err != nil {
		t.Fatal(err)
	}

	if uevent != "" {
		if err := os.WriteFile(filepath.Join(devicePath, "uevent"), []byte(uevent), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSysfsEnumerator(t *testing.T) {
	sysRoot := t.TempDir()

	writeCard(t, sysRoot, "card10", "DRIVER=amdgpu\nPCI_ID=1002:744C\nPCI_SLOT_NAME=0000:c3:00.0\n")
	writeCard(t, sysRoot, "card0", "DRIVER=i915\nPCI_ID=8086:A780\nPCI_SLOT_NAME=0000:00:02.0\n")
	writeCard(t, sysRoot, "card1", "DRIVER=nvidia\nPCI_ID=10DE:2684\nPCI_SLOT_NAME=0000:01:00.0\n")
	// Same device exposed again, a connector and a render node.
	writeCard(t, sysRoot, "card2", "PCI_SLOT_NAME=0000:01:00.0\n")
	writeCard(t, sysRoot, "card0-DP-1", "PCI_SLOT_NAME=0000:02:00.0\n")
	writeCard(t, sysRoot, "renderD128", "PCI_SLOT_NAME=0000:02:00.0\n")
	// Virtual card without a PCI slot.
	writeCard(t, sysRoot, "card3", "DRIVER=vkms\n")

	var indices []uint32
	var ids []Luid
	err := NewSysfsEnumerator(sysRoot).Enumerate(func(index uint32, id Luid) bool {
		indices = append(indices, index)
		ids = append(ids, id)
		return true
	})
	if err != nil {
		t.Fatal(err)
	}

	expected := []Luid{0x200, 0x10000, 0xc30000}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("expected %v, got %v", expected, ids)
	}

	if !reflect.DeepEqual(indices, []uint32{0, 1, 2}) {
		t.Errorf("unexpected indices %v", indices)
	}

	vendor, device := ReadPCIID(filepath.Join(sysRoot, "class", "drm", "card1", "device"))
	if vendor != "10de" || device != "2684" {
		t.Errorf("unexpected pci id %s:%s", vendor, device)
	}
}

func TestSysfsEnumeratorMissingRoot(t *testing.T) {
	err := NewSysfsEnumerator(filepath.Join(t.TempDir(), "missing")).Enumerate(func(uint32, Luid) bool {
		t.Error("unexpected adapter")
		return true
	})

	if err == nil {
		t.Error("expected an error for a missing sysfs root")
	}
}

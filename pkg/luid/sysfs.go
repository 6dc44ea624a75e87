/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Juice-Labs/encprobe/pkg/logger"
)

// SysfsEnumerator walks /sys/class/drm and derives an identifier from the
// PCI slot of each card, since Linux has no adapter LUIDs.
type SysfsEnumerator struct {
	// sysRoot is "/sys" in production and a fixture directory in tests.
	sysRoot string
}

func NewSysfsEnumerator(sysRoot string) *SysfsEnumerator {
	return &SysfsEnumerator{sysRoot: sysRoot}
}

func (enumerator *SysfsEnumerator) Enumerate(fn EnumerateFn) error {
	drmBase := filepath.Join(enumerator.sysRoot, "class", "drm")
	entries, err := os.ReadDir(drmBase)
	if err != nil {
		return err
	}

	var cards []int
	for _, entry := range entries {
		if number, ok := cardNumber(entry.Name()); ok {
			cards = append(cards, number)
		}
	}
	sort.Ints(cards)

	seen := map[Luid]bool{}
	index := uint32(0)
	for _, card := range cards {
		devicePath := filepath.Join(drmBase, "card"+strconv.Itoa(card), "device")

		slot := ReadPCISlot(devicePath)
		if slot == "" {
			logger.Debugf("card%d has no PCI slot, skipping", card)
			continue
		}

		address, err := ParsePCIAddress(slot)
		if err != nil {
			logger.Debugf("card%d: %v", card, err)
			continue
		}

		id := address.Luid()
		if seen[id] {
			continue
		}
		seen[id] = true

		if !fn(index, id) {
			break
		}
		index++
	}

	return nil
}

// cardNumber accepts card device names (card0, card1, ...) but not
// connectors (card0-DP-1) or render nodes (renderD128).
func cardNumber(name string) (int, bool) {
	suffix, found := strings.CutPrefix(name, "card")
	if !found || suffix == "" {
		return 0, false
	}

	for _, character := range suffix {
		if character < '0' || character > '9' {
			return 0, false
		}
	}

	number, err := strconv.Atoi(suffix)
	return number, err == nil
}

// ReadPCISlot returns PCI_SLOT_NAME from a device's uevent file, or "".
func ReadPCISlot(devicePath string) string {
	return readUevent(devicePath)["PCI_SLOT_NAME"]
}

// ReadPCIID returns the vendor and device ids from a device's uevent file
// as lowercase hex strings, e.g. "8086" and "56a0".
func ReadPCIID(devicePath string) (vendor string, device string) {
	value := readUevent(devicePath)["PCI_ID"]
	vendor, device, _ = strings.Cut(strings.ToLower(value), ":")
	return vendor, device
}

func readUevent(devicePath string) map[string]string {
	values := map[string]string{}

	data, err := os.ReadFile(filepath.Join(devicePath, "uevent"))
	if err != nil {
		return values
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if found {
			values[key] = value
		}
	}

	return values
}

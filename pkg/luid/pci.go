/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package luid

import (
	"fmt"
	"regexp"
	"strconv"
)

type PCIAddress struct {
	Domain   uint32
	Bus      uint8
	Device   uint8
	Function uint8
}

var pcibusRegex = regexp.MustCompile(`(?i)(?:([0-9a-f]{4,8}):)?([0-9a-f]{2}):([0-9a-f]{2})\.([0-7])`)

// ParsePCIAddress accepts "0000:03:00.0" as well as the short "03:00.0".
func ParsePCIAddress(pciIdentifier string) (PCIAddress, error) {
	matches := pcibusRegex.FindStringSubmatch(pciIdentifier)
	if matches == nil {
		return PCIAddress{}, ErrInvalidLuid.Wrap(fmt.Errorf("invalid pci address %q", pciIdentifier))
	}

	var domain uint64
	if matches[1] != "" {
		domain, _ = strconv.ParseUint(matches[1], 16, 32)
	}
	bus, _ := strconv.ParseUint(matches[2], 16, 8)
	device, _ := strconv.ParseUint(matches[3], 16, 8)
	function, _ := strconv.ParseUint(matches[4], 16, 8)

	return PCIAddress{
		Domain:   uint32(domain),
		Bus:      uint8(bus),
		Device:   uint8(device),
		Function: uint8(function),
	}, nil
}

// String returns the sysfs slot name, e.g. 0000:03:00.0.
func (address PCIAddress) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%x", address.Domain, address.Bus, address.Device, address.Function)
}

// Luid packs the address into an identifier for platforms without native
// adapter LUIDs: domain<<32 | bus<<16 | device<<8 | function.
func (address PCIAddress) Luid() Luid {
	return Luid(uint64(address.Domain)<<32 |
		uint64(address.Bus)<<16 |
		uint64(address.Device)<<8 |
		uint64(address.Function))
}

// PCIAddress reverses PCIAddress.Luid.
func (id Luid) PCIAddress() PCIAddress {
	return PCIAddress{
		Domain:   uint32(id >> 32),
		Bus:      uint8(id >> 16),
		Device:   uint8(id >> 8),
		Function: uint8(id),
	}
}
